package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"PipSignal/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider reads hourly FX closes from the Yahoo Finance chart API.
type YahooProvider struct {
	BaseURL string
	Client  *http.Client
	Timeout time.Duration // upper bound for one History call
}

// NewYahooProvider creates a live provider with optional proxy support.
func NewYahooProvider(proxyURL string, timeout time.Duration) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &YahooProvider{
		BaseURL: defaultYahooBaseURL,
		Client:  &http.Client{Transport: transport},
		Timeout: timeout,
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooTicker maps EURUSD to the Yahoo FX ticker EURUSD=X.
func yahooTicker(inst model.Instrument) string {
	return string(inst) + "=X"
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns up to `length` most recent hourly closes. Any failure,
// including the call exceeding Timeout, is reported as ErrFeedUnavailable.
func (p *YahooProvider) History(ctx context.Context, inst model.Instrument, _ float64, length int) (model.PriceSeries, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	prices, err := p.fetchCloses(ctx, inst)
	if err != nil {
		zap.L().Warn("yahoo history failed", zap.String("instrument", string(inst)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	if length > 0 && len(prices) > length {
		prices = prices[len(prices)-length:]
	}
	return prices, nil
}

func (p *YahooProvider) fetchCloses(ctx context.Context, inst model.Instrument) (model.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1h&range=1mo",
		p.BaseURL, url.PathEscape(yahooTicker(inst)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, errors.New("yahoo: no data returned")
	}

	closes := chart.Chart.Result[0].Indicators.Quote[0].Close
	prices := make(model.PriceSeries, 0, len(closes))
	for _, c := range closes {
		if c == nil || *c <= 0 {
			continue // skip gaps
		}
		prices = append(prices, *c)
	}
	if len(prices) == 0 {
		return nil, errors.New("yahoo: no closes returned")
	}
	return prices, nil
}
