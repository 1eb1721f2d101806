// Package crc16 implements CRC-16/CCITT-FALSE, the checksum BR Code readers
// verify: polynomial 0x1021, initial value 0xFFFF, no reflection, no final XOR.
package crc16

import "fmt"

const (
	Polynomial = 0x1021
	Init       = 0xFFFF
)

var table = makeTable(Polynomial)

func makeTable(poly uint16) [256]uint16 {
	var t [256]uint16
	for i := range t {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}

// Update continues a running checksum over data.
func Update(crc uint16, data []byte) uint16 {
	for _, b := range data {
		crc = crc<<8 ^ table[byte(crc>>8)^b]
	}
	return crc
}

// Checksum returns the CRC of data.
func Checksum(data []byte) uint16 {
	return Update(Init, data)
}

// Hex returns the CRC of data as four uppercase hex digits.
func Hex(data []byte) string {
	return fmt.Sprintf("%04X", Checksum(data))
}
