package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/olenak/lingocards/internal/logger"
)

// Lookup queries an external dictionary API for a term in a language.
type Lookup interface {
	Lookup(ctx context.Context, lang, term string) ([]Entry, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("dictionary"),
	}
}

// Entry is a single dictionary result for a looked-up word.
type Entry struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`
}

type Phonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// ErrNotFound is reported when the dictionary has no entry for a term.
var ErrNotFound = fmt.Errorf("dictionary: term not found")

func (c *Client) Lookup(ctx context.Context, lang, term string) ([]Entry, error) {
	log := logger.FromContext(ctx).WithPrefix("dictionary").WithField("term", term)
	reqURL := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(lang), url.PathEscape(term))

	log.Debug("looking up term at: %s", reqURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch dictionary entry: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("dictionary response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		log.Debug("no dictionary entry for term")
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("dictionary request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("dictionary status %d: %s", resp.StatusCode, string(body))
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		log.Error("failed to decode dictionary response: %v", err)
		return nil, err
	}

	log.Info("found %d dictionary entries for term %s", len(entries), term)
	return entries, nil
}
