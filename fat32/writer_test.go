package fat32

//go:generate mockgen -destination=mock_io_test.go -package=fat32 io WriteSeeker

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const size64MiB = 64 * 1024 * 1024

// formatMemImage formats an in-memory image of volumeBytes bytes. The image
// is sized first: Format writes into an existing image, and afero's MemMapFs
// drops the existing contents when writing past the end of a file.
func formatMemImage(t *testing.T, volumeBytes uint64) (afero.File, *Volume) {
	t.Helper()
	fs := afero.NewMemMapFs()
	f, err := fs.Create("/fat32.img")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	if err := f.Truncate(int64(volumeBytes)); err != nil {
		t.Fatal(err)
	}
	v, err := Format(f, volumeBytes, nil)
	if err != nil {
		t.Fatal(err)
	}
	return f, v
}

func TestFormatRoundTrip(t *testing.T) {
	f, want := formatMemImage(t, size64MiB)

	got, err := ReadVolume(f, &ReadOptions{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected volume: diff (-want +got):\n%s", diff)
	}

	bs := got.BootSector
	if got, want := bs.TotalSectorsLong, uint32(131072); got != want {
		t.Errorf("TotalSectorsLong = %d, want %d", got, want)
	}
	if got, want := bs.ReservedSectors, uint16(32); got != want {
		t.Errorf("ReservedSectors = %d, want %d", got, want)
	}
	if got, want := bs.NumberOfFATs, uint8(2); got != want {
		t.Errorf("NumberOfFATs = %d, want %d", got, want)
	}
	entries := make([]uint32, 5)
	for i := range entries {
		entries[i] = got.FAT.Entry(uint32(i))
	}
	if diff := cmp.Diff([]uint32{0x0FFFFFF8, 0x0FFFFFFF, 0x0FFFFFFF, 0, 0}, entries); diff != "" {
		t.Errorf("unexpected FAT entries: diff (-want +got):\n%s", diff)
	}
}

func TestFormatLayout(t *testing.T) {
	f, v := formatMemImage(t, size64MiB)
	fatBytes := v.BootSector.FATBytes()

	readAt := func(off, n int64) []byte {
		t.Helper()
		b := make([]byte, n)
		if _, err := f.ReadAt(b, off); err != nil {
			t.Fatalf("ReadAt(%d, %d): %v", off, n, err)
		}
		return b
	}

	if diff := cmp.Diff([]byte{0x55, 0xAA}, readAt(510, 2)); diff != "" {
		t.Errorf("unexpected boot sector signature: diff (-want +got):\n%s", diff)
	}
	// The backup boot sector is recorded but not written.
	if diff := cmp.Diff(make([]byte, 512), readAt(6*512, 512)); diff != "" {
		t.Errorf("backup boot sector unexpectedly written: diff (-want +got):\n%s", diff)
	}
	first := readAt(32*512, fatBytes)
	second := readAt(32*512+fatBytes, fatBytes)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("FAT copies differ: diff (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]byte(v.FAT), first); diff != "" {
		t.Errorf("unexpected FAT: diff (-want +got):\n%s", diff)
	}

	// The data region following the FATs is left alone.
	if diff := cmp.Diff(make([]byte, 4096), readAt(32*512+2*fatBytes, 4096)); diff != "" {
		t.Errorf("data region unexpectedly written: diff (-want +got):\n%s", diff)
	}

	st, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := st.Size(), int64(size64MiB); got != want {
		t.Errorf("image size = %d after Format, want %d", got, want)
	}
}

func TestFormatEveryStageSurvives(t *testing.T) {
	f, _ := formatMemImage(t, size64MiB)
	for _, entry := range []struct {
		stage Stage
		off   int64
		want  []byte
	}{
		{StageBootSector, 0, []byte{0xEB, 0x58, 0x90}},
		{StageBootSector, 510, []byte{0x55, 0xAA}},
		{StageFSInfo, 512, []byte{0x52, 0x52, 0x61, 0x41}},
		{fatCopy(1), 32 * 512, []byte{0xF8, 0xFF, 0xFF, 0x0F}},
		{fatCopy(2), 32*512 + 128*512, []byte{0xF8, 0xFF, 0xFF, 0x0F}},
	} {
		got := make([]byte, len(entry.want))
		if _, err := f.ReadAt(got, entry.off); err != nil {
			t.Fatalf("ReadAt(%d): %v", entry.off, err)
		}
		if diff := cmp.Diff(entry.want, got); diff != "" {
			t.Errorf("%s at %d: diff (-want +got):\n%s", entry.stage, entry.off, diff)
		}
	}
}

func TestFormatOsFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "fat32.img")
	f, err := afero.NewOsFs().Create(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	want, err := Format(f, size64MiB, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadVolume(f, &ReadOptions{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected volume: diff (-want +got):\n%s", diff)
	}
}

func TestFormatTooSmall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	// No calls are expected: the geometry is rejected before writing.
	w := NewMockWriteSeeker(ctrl)

	_, err := Format(w, 16*1024, nil)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("Format(16 KiB) = %v, want *ConfigError", err)
	}
}

func TestWriteVolumeErrors(t *testing.T) {
	v, err := NewVolume(size64MiB, nil)
	if err != nil {
		t.Fatal(err)
	}
	fatBytes := int(v.BootSector.FATBytes())
	errDiskFull := errors.New("no space left on device")
	errSeek := errors.New("illegal seek")

	for _, entry := range []struct {
		desc    string
		expect  func(w *MockWriteSeeker)
		wantOp  string
		wantErr error
		stage   Stage
	}{
		{
			desc: "short boot sector write",
			expect: func(w *MockWriteSeeker) {
				gomock.InOrder(
					w.EXPECT().Seek(int64(0), io.SeekStart).Return(int64(0), nil),
					w.EXPECT().Write(gomock.Any()).Return(100, nil),
				)
			},
			wantOp:  "write",
			wantErr: io.ErrShortWrite,
			stage:   StageBootSector,
		},
		{
			desc: "FS info seek",
			expect: func(w *MockWriteSeeker) {
				gomock.InOrder(
					w.EXPECT().Seek(int64(0), io.SeekStart).Return(int64(0), nil),
					w.EXPECT().Write(gomock.Any()).Return(512, nil),
					w.EXPECT().Seek(int64(512), io.SeekStart).Return(int64(0), errSeek),
				)
			},
			wantOp:  "seek",
			wantErr: errSeek,
			stage:   StageFSInfo,
		},
		{
			desc: "second FAT copy",
			expect: func(w *MockWriteSeeker) {
				gomock.InOrder(
					w.EXPECT().Seek(int64(0), io.SeekStart).Return(int64(0), nil),
					w.EXPECT().Write(gomock.Any()).Return(512, nil),
					w.EXPECT().Seek(int64(512), io.SeekStart).Return(int64(512), nil),
					w.EXPECT().Write(gomock.Any()).Return(512, nil),
					w.EXPECT().Seek(int64(32*512), io.SeekStart).Return(int64(32*512), nil),
					w.EXPECT().Write(gomock.Any()).Return(fatBytes, nil),
					w.EXPECT().Write(gomock.Any()).Return(4096, errDiskFull),
				)
			},
			wantOp:  "write",
			wantErr: errDiskFull,
			stage:   "FAT copy 2",
		},
	} {
		entry := entry // copy
		t.Run(entry.desc, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			w := NewMockWriteSeeker(ctrl)
			entry.expect(w)

			err := WriteVolume(w, v)
			var ioerr *IOError
			if !errors.As(err, &ioerr) {
				t.Fatalf("WriteVolume() = %v, want *IOError", err)
			}
			if ioerr.Stage != entry.stage {
				t.Errorf("IOError.Stage = %q, want %q", ioerr.Stage, entry.stage)
			}
			if ioerr.Op != entry.wantOp {
				t.Errorf("IOError.Op = %q, want %q", ioerr.Op, entry.wantOp)
			}
			if !errors.Is(err, entry.wantErr) {
				t.Errorf("WriteVolume() = %v, want wrapped %v", err, entry.wantErr)
			}
		})
	}
}
