// Package fat32 computes, writes and reads the metadata of FAT32 file system
// images: the boot sector, the FS information sector and the file allocation
// table.
//
// Formatting lays out an empty volume whose root directory occupies a single
// cluster. Directory entries, file contents and the backup boot sector are
// not written.
//
// All records are encoded field by field at fixed little-endian offsets, so
// the layout does not depend on Go struct memory layout.
package fat32
