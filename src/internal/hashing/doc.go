// Package hashing provides MD5 checksum calculation utilities.
//
// This package implements a transparent proxy for calculating the MD5 checksum
// of a data stream on top of the digest engine.
//
// # Components
//
//   - ChecksumReaderProxy: Calculates MD5 of everything read through an io.Reader
//   - ChecksumProvider: Interface for types that provide checksums
//
// # Example Usage
//
// Calculating checksum while reading a file:
//
//	f, _ := os.Open(path)
//	defer f.Close()
//
//	proxy := hashing.NewMD5ReaderProxy(io.LimitReader(f, limit), engine)
//	_, _ = io.Copy(io.Discard, proxy)
//
//	checksum, _ := proxy.GetChecksum()
//	fmt.Printf("Read %d bytes, MD5: %s\n", proxy.Size(), checksum)
//
// The digest engine is one-shot, so the proxy retains the data it sees and
// hashes it when GetChecksum is called. Callers bound the reader; the proxy
// itself retains whatever passes through it.
package hashing
