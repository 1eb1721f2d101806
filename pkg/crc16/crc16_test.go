package crc16

import "testing"

func TestChecksumCheckValue(t *testing.T) {
	if got := Checksum([]byte("123456789")); got != 0x29B1 {
		t.Fatalf("expected 0x29B1, got %#04x", got)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "FFFF"},
		{"check value", "123456789", "29B1"},
		{"single byte", "A", "B915"},
		{
			name: "br code prefix",
			in:   "00020101021126580014br.gov.bcb.pix0136123e4567-e12b-12d1-a456-42665544000052040000530398654041.005802BR5904TEST6008TESTCITY62070503***6304",
			want: "66EB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hex([]byte(tt.in)); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestUpdateMatchesChecksum(t *testing.T) {
	data := []byte("0002010102115802BR")
	running := Update(Init, data[:7])
	running = Update(running, data[7:])
	if running != Checksum(data) {
		t.Fatalf("incremental %04X != one-shot %04X", running, Checksum(data))
	}
}
