package services

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/resethq/reset-backend/internal/kv"
	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/repos"
	"github.com/resethq/reset-backend/internal/types"
)

// Background palette for generated avatars. Picked deterministically from the
// user id so the same account always renders the same color.
var avatarPalette = []color.NRGBA{
	{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF}, // green
	{R: 0x42, G: 0xA5, B: 0xF5, A: 0xFF}, // blue
	{R: 0xAB, G: 0x47, B: 0xBC, A: 0xFF}, // purple
	{R: 0xFF, G: 0x70, B: 0x43, A: 0xFF}, // orange
	{R: 0x26, G: 0xA6, B: 0x9A, A: 0xFF}, // teal
	{R: 0xEC, G: 0x40, B: 0x7A, A: 0xFF}, // pink
}

type AvatarService interface {
	// AssignColor stamps a palette color onto a user that has none yet.
	AssignColor(user *types.User)
	// Render returns the user's initials avatar as PNG bytes, serving from
	// the local cache when the cached copy matches the user's avatar key.
	Render(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

type avatarService struct {
	log      *logger.Logger
	users    repos.UserRepo
	cache    kv.Store
	fontFace font.Face
}

func NewAvatarService(baseLog *logger.Logger, users repos.UserRepo, cache kv.Store) (AvatarService, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse avatar font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 206})
	return &avatarService{
		log:      baseLog.With("service", "AvatarService"),
		users:    users,
		cache:    cache,
		fontFace: face,
	}, nil
}

func (as *avatarService) AssignColor(user *types.User) {
	if strings.TrimSpace(user.AvatarColor) != "" {
		return
	}
	h := fnv.New32a()
	h.Write([]byte(user.ID.String()))
	c := avatarPalette[int(h.Sum32())%len(avatarPalette)]
	user.AvatarColor = fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	user.AvatarKey = fmt.Sprintf("%s-%s", initialsOf(user.DisplayName), user.AvatarColor)
}

func (as *avatarService) Render(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	user, err := as.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	cacheKey := "avatar:" + userID.String() + ":" + user.AvatarKey
	if raw, ok, err := as.cache.Get(ctx, cacheKey); err == nil && ok {
		return raw, nil
	}

	raw, err := as.render(user)
	if err != nil {
		return nil, err
	}
	if err := as.cache.Set(ctx, cacheKey, raw); err != nil {
		// Cache miss next time, nothing lost.
		as.log.Warn("could not cache rendered avatar", "user_id", userID, "error", err)
	}
	return raw, nil
}

func (as *avatarService) render(user *types.User) ([]byte, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(parseHexColor(user.AvatarColor))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := initialsOf(user.DisplayName)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2), cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode avatar png: %w", err)
	}
	return buf.Bytes(), nil
}

// initialsOf takes the first rune of the first two whitespace-separated words.
// Empty display names fall back to "?".
func initialsOf(displayName string) string {
	words := strings.Fields(displayName)
	if len(words) == 0 {
		return "?"
	}
	var b strings.Builder
	for i, w := range words {
		if i == 2 {
			break
		}
		for _, r := range w {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}

func parseHexColor(s string) color.NRGBA {
	c := color.NRGBA{R: 0x42, G: 0xA5, B: 0xF5, A: 0xFF}
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return c
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return c
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}
