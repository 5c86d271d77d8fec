package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Roma7-7-7/homework-notifier/internal/homework"
)

const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const maxBodyDescription = 256

type Client struct {
	endpoint string
	token    string
	client   *http.Client

	log *slog.Logger
}

func NewClient(endpoint, token string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},

		log: log.With("component", "practicum"),
	}
}

// HomeworkStatuses requests homework statuses updated since from (unix seconds)
// and returns the decoded JSON body as is.
func (c *Client) HomeworkStatuses(ctx context.Context, from int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: parse endpoint=%s: %w", homework.ErrAPI, c.endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(from, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request to endpoint=%s: %w", homework.ErrAPI, c.endpoint, err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	c.log.DebugContext(ctx, "requesting homework statuses", "from", from)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: endpoint=%s is unreachable: %w", homework.ErrAPI, c.endpoint, err)
	}
	defer resp.Body.Close()

	var body bytes.Buffer
	if _, err = body.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("%w: read response from endpoint=%s: %w", homework.ErrAPI, c.endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: endpoint=%s status=%s body=%s",
			homework.ErrAPI, c.endpoint, resp.Status, describeBody(resp.Header.Get("Content-Type"), body.Bytes()))
	}

	res, err := decode(body.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", homework.ErrDecode, err)
	}

	return res, nil
}

func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var res any
	if err := dec.Decode(&res); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after json value")
	}

	return res, nil
}

// describeBody shortens a response body for error messages.
// HTML pages (gateway errors) are reduced to their visible text.
func describeBody(contentType string, body []byte) string {
	text := string(body)

	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "text/html" {
		if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
			title := strings.TrimSpace(doc.Find("title").First().Text())
			h1 := strings.TrimSpace(doc.Find("h1").First().Text())
			switch {
			case title != "" && h1 != "" && h1 != title:
				text = title + ": " + h1
			case title != "":
				text = title
			case h1 != "":
				text = h1
			default:
				text = doc.Find("body").Text()
			}
		}
	}

	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > maxBodyDescription {
		text = string(r[:maxBodyDescription]) + "..."
	}
	if text == "" {
		return "<empty>"
	}
	return text
}
