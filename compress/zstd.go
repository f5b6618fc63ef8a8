package compress

// ZstdCodec provides Zstandard compression, favoring ratio over speed —
// best suited to archival or network transmission of encoded beads
// buffers that are compressed once and decompressed rarely.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
