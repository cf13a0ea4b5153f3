package gateway

import "hash/crc32"

// OrderID derives the numeric order id the banks' legacy order-id fields
// expect from an invoice unique id. CRC-32 (IEEE) keeps it deterministic
// within and across processes, so purchase and verify always agree.
func OrderID(invoiceUUID string) uint32 {
	return crc32.ChecksumIEEE([]byte(invoiceUUID))
}
