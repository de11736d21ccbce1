package cfbf

import "testing"

func TestDecodeHeaderBadSignature(t *testing.T) {
	buf := make([]byte, headerCoreLen)
	_, err := decodeHeader(buf)
	if err == nil {
		t.Fatal("expected error for all-zero buffer")
	}
	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != BadFormat {
		t.Fatalf("expected BadFormat, got %v", err)
	}
}

func TestDecodeHeaderBadByteOrder(t *testing.T) {
	im := newFatImage(512)
	im.setHeader(testHeader{
		firstDir:     1,
		firstMiniFAT: endOfChain,
		miniCutoff:   defaultMiniCut,
		firstDIFAT:   endOfChain,
		sectorShift:  9,
		miniShift:    miniSectorShift,
	}, nil)
	buf := im.bytes()[:headerCoreLen]
	// corrupt the byte-order mark
	buf[28], buf[29] = 0, 0
	_, err := decodeHeader(buf)
	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != BadFormat {
		t.Fatalf("expected BadFormat for bad byte order mark, got %v", err)
	}
}

func TestDecodeHeaderSectorSizes(t *testing.T) {
	for _, tc := range []struct {
		shift    uint16
		wantSize uint32
	}{
		{9, 512},
		{12, 4096},
	} {
		im := newFatImage(uint32(1) << tc.shift)
		im.setHeader(testHeader{
			firstDir:     1,
			firstMiniFAT: endOfChain,
			miniCutoff:   defaultMiniCut,
			firstDIFAT:   endOfChain,
			sectorShift:  tc.shift,
			miniShift:    miniSectorShift,
		}, nil)
		h, err := decodeHeader(im.bytes()[:headerCoreLen])
		if err != nil {
			t.Fatalf("shift %d: unexpected error: %v", tc.shift, err)
		}
		if h.SectorSize != tc.wantSize {
			t.Errorf("shift %d: got sector size %d, want %d", tc.shift, h.SectorSize, tc.wantSize)
		}
		if h.MiniSectorSize != 64 {
			t.Errorf("shift %d: got mini sector size %d, want 64", tc.shift, h.MiniSectorSize)
		}
	}
}
