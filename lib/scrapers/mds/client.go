package mds

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"chargewatch-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// ErrInterstitialPage means the operator served its generic landing page
// instead of charger-specific content. Callers treat it like any other
// fetch failure.
var ErrInterstitialPage = errors.New("got interstitial landing page instead of charger content")

const (
	// presence of the payment widget without the operator name is how we
	// tell the landing page apart from a real charger page
	paymentMarker  = "giro-e"
	operatorMarker = "mennekes"
)

type Client struct {
	baseUrl *url.URL
	http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
	// zero means the default of 20s
	Timeout time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 20
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", browser.Chrome())
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(timeout)

	telemetry.InstrumentClient(client, "chargewatch.scrapers.mds.http")

	return &Client{
		baseUrl: baseUrl,
		http:    client,
	}, nil
}

// Live reports that pages from this client reflect the operator's real
// state, as opposed to simulated markup.
func (c *Client) Live() bool { return true }

// Fetch loads the operator's status page for one charger and returns the
// parsed document. It fails on transport errors, non-success statuses and
// interstitial landing pages; extraction itself is left to the caller.
func (c *Client) Fetch(ctx context.Context, chargerId string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("evseid", chargerId).
		Get("")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch charger page")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("charger page returned %s", res.Status())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse charger page html")
		return nil, err
	}

	if IsInterstitial(doc) {
		span.SetStatus(codes.Error, ErrInterstitialPage.Error())
		return nil, ErrInterstitialPage
	}

	return doc, nil
}

// IsInterstitial detects the generic payment landing page: it carries the
// payment provider marker but never mentions the operator.
func IsInterstitial(doc *goquery.Document) bool {
	body := strings.ToLower(doc.Text())
	return strings.Contains(body, paymentMarker) && !strings.Contains(body, operatorMarker)
}
