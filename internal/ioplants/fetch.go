// Package ioplants obtains and parses the authoritative species table.
// The table comes from a local file or from a URL. A URL can point to
// the table itself or to an HTML page with a 'Download' link, which is
// how the USDA PLANTS advanced search serves it.
package ioplants

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/esdveg/internal/iofs"
	"github.com/gnames/esdveg/pkg/config"
	"github.com/gnames/gn"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DownloadText is the text of a link that leads to the table file.
const DownloadText = "Download"

// Fetcher finds a local copy of the species table.
type Fetcher struct {
	client    *http.Client
	cachePath string
	timeout   time.Duration
	progress  bool
}

// NewFetcher creates a Fetcher that stores downloaded tables in the cache
// directory of esdveg. With progress a download progress bar is shown.
func NewFetcher(cfg *config.Config, progress bool) *Fetcher {
	return &Fetcher{
		client:    &http.Client{},
		cachePath: config.PlantsCachePath(cfg.HomeDir),
		timeout:   time.Duration(cfg.Plants.TimeoutSec) * time.Second,
		progress:  progress,
	}
}

// IsURL reports if a source is an http(s) URL.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
}

// Fetch returns a path to a local file with the species table. A local
// source is returned as is. A URL is downloaded into the cache, the
// cached file is replaced only after a complete download.
func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	if !IsURL(source) {
		info, err := os.Stat(source)
		if err != nil {
			return "", FetchError(source, err)
		}
		if info.IsDir() {
			return "", FetchError(source, fmt.Errorf("%s is a directory", source))
		}
		return source, nil
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()
	err := iofs.WriteAtomic(f.cachePath, func(w io.Writer) error {
		return f.download(ctx, source, w)
	})
	if err != nil {
		return "", FetchError(source, err)
	}

	info, err := os.Stat(f.cachePath)
	if err != nil {
		return "", FetchError(source, err)
	}
	size := humanize.Bytes(uint64(info.Size()))
	slog.Info("Downloaded species table", "source", source,
		"path", f.cachePath, "size", size,
		"duration", time.Since(start).String())
	gn.Info("Downloaded species table <em>%s</em>", size)
	return f.cachePath, nil
}

func (f *Fetcher) download(ctx context.Context, source string, w io.Writer) error {
	resp, err := f.get(ctx, source)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if isHTML(resp) {
		link, err := downloadLink(resp.Request.URL, resp.Body)
		if err != nil {
			return err
		}
		resp.Body.Close()
		slog.Info("Following download link", "page", source, "link", link)

		resp, err = f.get(ctx, link)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if isHTML(resp) {
			return fmt.Errorf("download link %s leads to another HTML page", link)
		}
	}

	var body io.Reader = resp.Body
	if f.progress {
		bar := pb.Full.Start64(resp.ContentLength)
		bar.Set(pb.Bytes, true)
		bar.Set("prefix", "Downloading species table: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
		body = bar.NewProxyReader(resp.Body)
	}

	if _, err = io.Copy(w, body); err != nil {
		return fmt.Errorf("cannot read response body: %w", err)
	}
	return nil
}

func (f *Fetcher) get(ctx context.Context, link string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s returned status %d", link, resp.StatusCode)
	}
	return resp, nil
}

func isHTML(resp *http.Response) bool {
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return err == nil && mt == "text/html"
}

// downloadLink finds the first anchor with DownloadText and resolves
// its href against the page URL.
func downloadLink(page *url.URL, r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("cannot parse HTML of %s: %w", page, err)
	}

	for n := range doc.Descendants() {
		if n.Type != html.ElementNode || n.DataAtom != atom.A {
			continue
		}
		if strings.TrimSpace(text(n)) != DownloadText {
			continue
		}
		for _, a := range n.Attr {
			if a.Key != "href" {
				continue
			}
			ref, err := url.Parse(strings.TrimSpace(a.Val))
			if err != nil {
				return "", fmt.Errorf("bad download link %q: %w", a.Val, err)
			}
			return page.ResolveReference(ref).String(), nil
		}
	}
	return "", fmt.Errorf("no '%s' link found on %s", DownloadText, page)
}

func text(n *html.Node) string {
	var sb strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
	}
	return sb.String()
}
