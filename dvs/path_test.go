package dvs

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/stevemuller04/evrecovery/cfbf"
)

func TestSanitizeComponent(t *testing.T) {
	got := sanitizeComponent(`report/2020\summary` + string(rune(0x7F)))
	want := "report_2020_summary_"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSanitizeDirPathDropsTraversal(t *testing.T) {
	got := sanitizeDirPath(`..\..\etc/passwd`)
	want := "etc/passwd"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSanitizeDirPathEmpty(t *testing.T) {
	if got := sanitizeDirPath(`..\.\`); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestDecodePathString(t *testing.T) {
	raw := utf16PathContent("Inbox/Archived")
	got, err := decodePathString(raw)
	if err != nil {
		t.Fatalf("decodePathString: %v", err)
	}
	if got != "Inbox/Archived" {
		t.Errorf("got %q, want %q", got, "Inbox/Archived")
	}
}

// utf16PathContent builds the on-disk content of a metadata stream: a 4-byte
// length prefix (unused by the decoder) followed by a NUL-terminated
// UTF-16LE encoding of s.
func utf16PathContent(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 4+(len(units)+1)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[4+i*2:4+i*2+2], u)
	}
	return out
}

// buildPathFixture assembles a minimal CFBF image (sector size 512) whose
// directory holds a root storage plus "FolderPath" and "Title" streams, both
// backed by the mini-stream, with content folderContent/titleContent.
func buildPathFixture(folderContent, titleContent []byte) []byte {
	const sectorSize = 512
	buf := make([]byte, sectorSize) // header sector
	copy(buf[0:8], []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	binary.LittleEndian.PutUint16(buf[24:26], 0x003E)
	binary.LittleEndian.PutUint16(buf[26:28], 3)
	binary.LittleEndian.PutUint16(buf[28:30], 0xFFFE)
	binary.LittleEndian.PutUint16(buf[30:32], 9) // sector shift -> 512
	binary.LittleEndian.PutUint16(buf[32:34], 6) // mini-sector shift -> 64
	binary.LittleEndian.PutUint32(buf[48:52], 1) // first dir sector
	binary.LittleEndian.PutUint32(buf[56:60], 4096)
	binary.LittleEndian.PutUint32(buf[60:64], 2) // first mini-fat sector
	binary.LittleEndian.PutUint32(buf[64:68], 1)
	binary.LittleEndian.PutUint32(buf[68:72], 0xFFFFFFFE) // no difat chain
	for i := 0; i < 109; i++ {
		binary.LittleEndian.PutUint32(buf[0x4C+i*4:0x4C+i*4+4], 0xFFFFFFFF)
	}
	binary.LittleEndian.PutUint32(buf[0x4C:0x50], 0) // FAT sector 0 is physical sector 0

	sector := func(n int) []byte {
		for len(buf) < (n+2)*sectorSize {
			buf = append(buf, make([]byte, sectorSize)...)
		}
		return buf[(n+1)*sectorSize : (n+2)*sectorSize]
	}

	putU32 := func(s []byte, off int, v uint32) { binary.LittleEndian.PutUint32(s[off:off+4], v) }

	fat := sector(0)
	putU32(fat, 0, 0xFFFFFFFD) // sector 0: FATSECT
	putU32(fat, 4, 0xFFFFFFFE) // sector 1 (dir): end
	putU32(fat, 8, 0xFFFFFFFE) // sector 2 (mini-fat): end
	putU32(fat, 12, 0xFFFFFFFE) // sector 3 (mini-stream): end

	dirEntry := func(name string, objType byte, left, right, child uint32, start uint32, size uint64) []byte {
		e := make([]byte, 128)
		units := utf16.Encode([]rune(name))
		for i, u := range units {
			binary.LittleEndian.PutUint16(e[i*2:i*2+2], u)
		}
		binary.LittleEndian.PutUint16(e[64:66], uint16((len(units)+1)*2))
		e[66] = objType
		e[67] = 1
		putU32(e, 68, left)
		putU32(e, 72, right)
		putU32(e, 76, child)
		putU32(e, 116, start)
		binary.LittleEndian.PutUint64(e[120:128], size)
		return e
	}

	dirSec := sector(1)
	ministreamSize := uint64(128)
	copy(dirSec[0:128], dirEntry("Root Entry", 5, 0xFFFFFFFF, 0xFFFFFFFF, 1, 3, ministreamSize))
	copy(dirSec[128:256], dirEntry("FolderPath", 2, 0xFFFFFFFF, 2, 0xFFFFFFFF, 0, uint64(len(folderContent))))
	copy(dirSec[256:384], dirEntry("Title", 2, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 1, uint64(len(titleContent))))
	// entry 3 left zeroed (unallocated, unreferenced)

	minifat := sector(2)
	putU32(minifat, 0, 0xFFFFFFFE) // mini-sector 0 (FolderPath): end
	putU32(minifat, 4, 0xFFFFFFFE) // mini-sector 1 (Title): end

	ministream := sector(3)
	copy(ministream[0:64], folderContent)
	copy(ministream[64:128], titleContent)

	return buf
}

func TestRecoverPath(t *testing.T) {
	folder := utf16PathContent(`Inbox\Archived`)
	title := utf16PathContent("report/final.msg")
	raw := buildPathFixture(folder, title)

	c, err := cfbf.New(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("cfbf.New: %v", err)
	}
	got, err := RecoverPath(c)
	if err != nil {
		t.Fatalf("RecoverPath: %v", err)
	}
	if got.Dir != "Inbox/Archived" {
		t.Errorf("got dir %q, want %q", got.Dir, "Inbox/Archived")
	}
	if got.File != "report_final.msg" {
		t.Errorf("got file %q, want %q", got.File, "report_final.msg")
	}
}

func TestRecoverPathMissingStream(t *testing.T) {
	raw := buildPathFixture(utf16PathContent("x"), []byte{})
	// Corrupt the "Title" entry's name so it cannot be found.
	raw[(2)*512+256] = 'Z'
	c, err := cfbf.New(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("cfbf.New: %v", err)
	}
	_, err = RecoverPath(c)
	if err == nil {
		t.Fatal("expected an error when Title stream is missing")
	}
}
