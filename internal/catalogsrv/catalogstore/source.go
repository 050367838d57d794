package catalogstore

import (
	"context"
	_ "embed"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/assetdash/assetdash/internal/common/httpx"
)

//go:embed bundled/catalog.json
var bundledCatalog []byte

const (
	BundledSource     = "bundled"
	bundledSourceName = "catalog.json"
)

type LoadOptions struct {
	// Source is a file path, an http(s) URL, or empty for the bundled
	// catalog.
	Source     string
	Retries    uint
	RetryDelay time.Duration
	Timeout    time.Duration
	Transport  http.RoundTripper
}

// Load reads, decodes and validates the catalog named by opts.Source.
func Load(ctx context.Context, opts LoadOptions) (*Catalog, error) {
	source := opts.Source
	if source == "" {
		source = BundledSource
	}
	data, name, err := readSource(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data, name)
	if err != nil {
		return nil, err
	}
	c.source = source
	for _, m := range c.MetadataMismatches() {
		log.Ctx(ctx).Warn().Str("source", source).Msgf("catalog metadata mismatch: %s", m)
	}
	log.Ctx(ctx).Info().
		Str("source", source).
		Int("assets", c.Len()).
		Str("fingerprint", c.Fingerprint()).
		Msg("catalog loaded")
	return c, nil
}

// Bundled returns the catalog embedded in the binary.
func Bundled() (*Catalog, error) {
	c, err := Parse(bundledCatalog, bundledSourceName)
	if err != nil {
		return nil, err
	}
	c.source = BundledSource
	return c, nil
}

// BundledBytes returns a copy of the embedded catalog document.
func BundledBytes() []byte {
	return append([]byte(nil), bundledCatalog...)
}

// Parse decodes data, whose encoding is derived from name, into a Catalog.
func Parse(data []byte, name string) (*Catalog, error) {
	enc, err := DetectEncoding(name)
	if err != nil {
		return nil, err
	}
	doc, err := enc.ToJSON(data)
	if err != nil {
		return nil, err
	}
	return build(doc, name)
}

func readSource(ctx context.Context, source string, opts LoadOptions) ([]byte, string, error) {
	if source == BundledSource {
		return bundledCatalog, bundledSourceName, nil
	}
	if isURL(source) {
		u, err := url.Parse(source)
		if err != nil {
			return nil, "", ErrCatalogFetch.MsgErr("invalid catalog URL", err)
		}
		data, err := fetch(ctx, source, opts)
		if err != nil {
			return nil, "", err
		}
		return data, u.Path, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrCatalogNotFound.Suffix(source).Err(err)
		}
		return nil, "", ErrCatalogError.MsgErr("unable to read catalog", errors.Wrapf(err, "reading %s", source))
	}
	return data, source, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func fetch(ctx context.Context, source string, opts LoadOptions) ([]byte, error) {
	attempts := opts.Retries
	if attempts == 0 {
		attempts = 1
	}
	delay := opts.RetryDelay
	if delay == 0 {
		delay = time.Second
	}
	var transport []http.RoundTripper
	if opts.Transport != nil {
		transport = append(transport, opts.Transport)
	}

	var data []byte
	err := retry.Do(
		func() error {
			var err error
			data, err = httpx.GetBytes(ctx, source, opts.Timeout, transport...)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var httpErr *httpx.HTTPError
			if errors.As(err, &httpErr) {
				return httpErr.Temporary()
			}
			return true
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().Err(err).Uint("attempt", n+1).Str("source", source).Msg("catalog fetch failed, retrying")
		}),
	)
	if err != nil {
		var httpErr *httpx.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, ErrCatalogNotFound.Suffix(source).Err(err)
		}
		return nil, ErrCatalogFetch.Suffix(source).Err(err)
	}
	return data, nil
}
