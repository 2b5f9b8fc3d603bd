// Package browse is the page renderer capability used by the scraping
// services: it resolves a url into a parsed document or a raw body, and
// hides the http client details (cookies, cloudflare bypass, timeouts)
// from the extraction logic.
package browse

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http/cookiejar"
	"time"

	"commander-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

type Browser interface {
	// Document fetches a url and parses the response body as html.
	Document(ctx context.Context, url string) (*goquery.Document, error)
	// Binary fetches a url and returns the raw response body.
	Binary(ctx context.Context, url string) ([]byte, error)
}

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	// accept invalid upstream certificates, the pdf host serves a
	// broken chain
	InsecureSkipVerify bool
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)
	if opts.InsecureSkipVerify {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	telemetry.InstrumentResty(client, "commander.lib.browse")

	return &Client{http: client}, nil
}

func (c *Client) get(ctx context.Context, url string) (*resty.Response, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("unexpected status %d from %s", res.StatusCode(), url)
	}
	return res, nil
}

func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

func (c *Client) Binary(ctx context.Context, url string) ([]byte, error) {
	res, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return res.Body(), nil
}
