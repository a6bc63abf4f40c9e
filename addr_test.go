package bluetooth

import (
	"bytes"
	"testing"
)

func TestNewAddr(t *testing.T) {
	a := NewAddr("AA:BB:CC:DD:EE:FF")
	if a.String() != "aa:bb:cc:dd:ee:ff" {
		t.Fatalf("expected aa:bb:cc:dd:ee:ff but got %s instead", a.String())
	}
}

func TestAddrBytes(t *testing.T) {
	b, err := NewAddr("aa:bb:cc:dd:ee:ff").Bytes()
	if err != nil {
		t.Fatalf("expected nil error but got %s instead", err)
	}
	if !bytes.Equal(b, []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}) {
		t.Fatalf("expected decoded address but got %x instead", b)
	}

	if _, err := NewAddr("zz:bb").Bytes(); err == nil {
		t.Fatalf("expected error for bad address")
	}
}
