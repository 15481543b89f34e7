package data

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BenedictKing/jina-sum/internal/biz/domain"
	"github.com/BenedictKing/jina-sum/internal/biz/repo"
)

const jinaTimeout = 60 * time.Second

// jinaRepo implements the content repository over the Jina reader proxy.
// The proxy is a plain GET: {base}/{url} returns the readable page text.
type jinaRepo struct {
	client   *http.Client
	baseURL  string
	maxWords int
}

// NewJinaRepo creates a content repository backed by a Jina reader endpoint
func NewJinaRepo(baseURL string, maxWords int) repo.ContentRepo {
	return &jinaRepo{
		client:   &http.Client{Timeout: jinaTimeout},
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxWords: maxWords,
	}
}

// Fetch retrieves and cleans page text, truncated to maxWords characters.
// One attempt, no retry; failures surface to the caller.
func (r *jinaRepo) Fetch(ctx context.Context, url string) (string, error) {
	target := r.baseURL + "/" + url

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: proxy returned %d", domain.ErrUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}

	text := strings.TrimSpace(CleanContent(string(body)))
	if text == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrEmptyContent, url)
	}

	// Character-count truncation, not token-aware
	if runes := []rune(text); len(runes) > r.maxWords {
		text = string(runes[:r.maxWords])
	}

	fmt.Printf("[Jina] Fetched %s, %d chars\n", url, len([]rune(text)))
	return text, nil
}
