package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/utils"
)

var (
	// ErrBadStatus means the API envelope carried a code other than 200.
	ErrBadStatus = errors.New("api returned non-200 code")
	// ErrEmpty means the API answered 200 with nothing in it.
	ErrEmpty = errors.New("api returned no data")
)

type envelope[T any] struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   T      `json:"data"`
}

type Ayah struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
}

type surahEdition struct {
	Number int    `json:"number"`
	Ayahs  []Ayah `json:"ayahs"`
}

// AlQuran talks to the alquran.cloud v1 API.
type AlQuran struct {
	api     *utils.API
	edition string
}

func NewAlQuran(baseURL, edition string, timeout time.Duration) *AlQuran {
	return &AlQuran{api: utils.NewAPI(strings.TrimRight(baseURL, "/"), timeout), edition: edition}
}

func (a *AlQuran) GetChapters(ctx context.Context) ([]data.Chapter, error) {
	var resp envelope[[]data.Chapter]
	if err := a.api.Get(ctx, "/surah", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch surah list: %w", err)
	}
	if resp.Code != 200 {
		return nil, fmt.Errorf("%w: %d %s", ErrBadStatus, resp.Code, resp.Status)
	}
	if len(resp.Data) == 0 {
		return nil, ErrEmpty
	}
	return resp.Data, nil
}

func (a *AlQuran) GetVerses(ctx context.Context, chapterNumber int) ([]string, error) {
	var resp envelope[surahEdition]
	path := fmt.Sprintf("/surah/%d/%s", chapterNumber, a.edition)
	if err := a.api.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch surah %d: %w", chapterNumber, err)
	}
	if resp.Code != 200 {
		return nil, fmt.Errorf("%w: %d %s", ErrBadStatus, resp.Code, resp.Status)
	}
	if len(resp.Data.Ayahs) == 0 {
		return nil, ErrEmpty
	}

	verses := make([]string, len(resp.Data.Ayahs))
	for i, ayah := range resp.Data.Ayahs {
		verses[i] = ayah.Text
	}
	return verses, nil
}

// FormatVerses flattens verses into one string, each suffixed with its 1-based
// position in parentheses and followed by a space.
func FormatVerses(verses []string) string {
	var b strings.Builder
	for i, text := range verses {
		fmt.Fprintf(&b, "%s (%d) ", text, i+1)
	}
	return b.String()
}
