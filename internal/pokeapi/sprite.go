package pokeapi

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// builtinSpritePNG is a 1x1 transparent PNG used when no fallback asset
// is configured.
const builtinSpritePNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// BuiltinDefaultSprite returns the built-in fallback sprite bytes.
func BuiltinDefaultSprite() []byte {
	raw, err := base64.StdEncoding.DecodeString(builtinSpritePNG)
	if err != nil {
		panic(err)
	}
	return raw
}

// allowedSpriteTypes are the media types accepted for sprite downloads.
var allowedSpriteTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/jpg":  {},
	"image/gif":  {},
}

// SpriteFetcher downloads sprites and falls back to a default asset on any
// failure. A sprite problem is never an error: callers always get an image.
type SpriteFetcher struct {
	client        *Client
	defaultSprite string // base64
	logger        logger.Logger
}

// NewSpriteFetcher creates a fetcher holding defaultSprite (raw bytes,
// encoded once here) as the fallback asset.
func NewSpriteFetcher(client *Client, defaultSprite []byte, l logger.Logger) *SpriteFetcher {
	return &SpriteFetcher{
		client:        client,
		defaultSprite: base64.StdEncoding.EncodeToString(defaultSprite),
		logger:        l.Named("pokeapi.sprite"),
	}
}

// DefaultSprite returns the fallback asset as base64.
func (f *SpriteFetcher) DefaultSprite() string {
	return f.defaultSprite
}

// FetchBase64 downloads the sprite at spriteURL and returns it base64
// encoded. Missing or malformed URLs, transport failures, disallowed media
// types and empty payloads all yield the default sprite.
func (f *SpriteFetcher) FetchBase64(ctx context.Context, spriteURL string, pokemonID int) string {
	if spriteURL == "" {
		f.logger.Warn("empty sprite url, using default", "pokemon_id", pokemonID)
		return f.defaultSprite
	}

	if u, err := url.Parse(spriteURL); err != nil || !u.IsAbs() {
		f.logger.Warn("malformed sprite url, using default", "pokemon_id", pokemonID, "url", spriteURL)
		return f.defaultSprite
	}

	body, contentType, err := f.client.FetchRaw(ctx, spriteURL)
	if err != nil {
		f.logger.Warn("sprite fetch failed, using default", "pokemon_id", pokemonID, "url", spriteURL, "error", err)
		return f.defaultSprite
	}

	if _, ok := allowedSpriteTypes[mediaType(contentType)]; !ok {
		f.logger.Warn("disallowed sprite media type, using default", "pokemon_id", pokemonID, "content_type", contentType)
		return f.defaultSprite
	}

	if len(body) == 0 {
		f.logger.Warn("empty sprite payload, using default", "pokemon_id", pokemonID, "url", spriteURL)
		return f.defaultSprite
	}

	return base64.StdEncoding.EncodeToString(body)
}

// mediaType strips parameters such as charset from a Content-Type value.
func mediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
