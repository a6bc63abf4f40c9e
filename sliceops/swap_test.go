package sliceops

import (
	"bytes"
	"testing"
)

func TestSwapBuf(t *testing.T) {
	tests := []struct {
		in   []byte
		want []byte
	}{
		{nil, []byte{}},
		{[]byte{1}, []byte{1}},
		{[]byte{1, 2}, []byte{2, 1}},
		{[]byte{1, 2, 3}, []byte{3, 2, 1}},
		{[]byte{1, 2, 3, 4}, []byte{4, 3, 2, 1}},
	}

	for _, tt := range tests {
		got := SwapBuf(tt.in)
		if !bytes.Equal(got, tt.want) {
			t.Fatalf("expected %v but got %v instead", tt.want, got)
		}
	}
}

func TestSwapBufCopies(t *testing.T) {
	in := []byte{1, 2, 3}
	_ = SwapBuf(in)
	if !bytes.Equal(in, []byte{1, 2, 3}) {
		t.Fatalf("expected input to be untouched but got %v instead", in)
	}
}
