package constants

type (
	CachePrefix string
)

const (
	// DefaultIDPrefix is prepended to the zero-padded sequence number when a
	// card is issued: BGR-POL-00042. Overridable via ID_PREFIX.
	DefaultIDPrefix = "BGR-POL-"

	// IDNumberWidth is the zero-pad width of the sequence part.
	IDNumberWidth = 5

	CachePrefixAssets CachePrefix = "ASSETS_"
)
