package catalogstore

import (
	"path"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/jsonc"
	"sigs.k8s.io/yaml"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
)

type Compression string

const (
	CompressionNone   Compression = ""
	CompressionSnappy Compression = "snappy"
	CompressionZstd   Compression = "zstd"
)

// Encoding is how a catalog source is stored.
type Encoding struct {
	Format      Format
	Compression Compression
}

// zstd encoders and decoders are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("catalogstore: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("catalogstore: zstd decoder initialization failed: " + err.Error())
	}
}

// DetectEncoding derives the encoding from a file name or URL path, e.g.
// "catalog.yaml.zst". Names without an extension are read as JSON.
func DetectEncoding(name string) (Encoding, error) {
	base := strings.ToLower(path.Base(name))
	var enc Encoding
	switch {
	case strings.HasSuffix(base, ".sz"):
		enc.Compression = CompressionSnappy
		base = strings.TrimSuffix(base, ".sz")
	case strings.HasSuffix(base, ".zst"):
		enc.Compression = CompressionZstd
		base = strings.TrimSuffix(base, ".zst")
	}
	switch path.Ext(base) {
	case ".json", "":
		enc.Format = FormatJSON
	case ".jsonc":
		enc.Format = FormatJSONC
	case ".yaml", ".yml":
		enc.Format = FormatYAML
	default:
		return Encoding{}, ErrUnsupportedFormat.Suffix(name)
	}
	return enc, nil
}

// ToJSON decompresses data and converts it to plain JSON.
func (e Encoding) ToJSON(data []byte) ([]byte, error) {
	var err error
	switch e.Compression {
	case CompressionNone:
	case CompressionSnappy:
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, ErrDecompress.Err(err)
		}
	case CompressionZstd:
		data, err = zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, ErrDecompress.Err(err)
		}
	default:
		return nil, ErrUnsupportedFormat.Suffix(string(e.Compression))
	}

	switch e.Format {
	case FormatJSON:
		return data, nil
	case FormatJSONC:
		return jsonc.ToJSON(data), nil
	case FormatYAML:
		doc, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, ErrInvalidCatalog.MsgErr("invalid YAML catalog", err)
		}
		return doc, nil
	}
	return nil, ErrUnsupportedFormat.Suffix(string(e.Format))
}

// FromJSON converts a JSON document into this encoding. JSONC output is
// plain JSON, which is valid JSONC.
func (e Encoding) FromJSON(doc []byte) ([]byte, error) {
	data := doc
	if e.Format == FormatYAML {
		var err error
		data, err = yaml.JSONToYAML(doc)
		if err != nil {
			return nil, ErrInvalidCatalog.MsgErr("unable to encode YAML catalog", err)
		}
	}
	switch e.Compression {
	case CompressionSnappy:
		return snappy.Encode(nil, data), nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	}
	return data, nil
}
