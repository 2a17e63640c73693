package treasury

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fxinsight/internal/adapters"
	"fxinsight/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const fields = "country_currency_desc,exchange_rate,record_date"

// maxPages bounds pagination in case the API misreports total-pages.
const maxPages = 100

// Client reads Treasury Reporting Rates of Exchange from the Fiscal Data API.
type Client struct {
	http       *http.Client
	endpoint   string
	pageSize   int
	currencies domain.CurrencySet
}

func NewClient(httpClient *http.Client, endpoint string, pageSize int, currencies domain.CurrencySet) *Client {
	return &Client{http: httpClient, endpoint: endpoint, pageSize: pageSize, currencies: currencies}
}

// FetchRates returns every observation for q.Currencies recorded on or after q.Start,
// sorted ascending by date.
func (c *Client) FetchRates(ctx context.Context, q adapters.Query) (domain.Table, error) {
	names := make([]string, 0, len(q.Currencies))
	for _, code := range q.Currencies {
		cur, ok := c.currencies.ByCode(code)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, code)
		}
		names = append(names, cur.Name)
	}
	if len(names) == 0 {
		names = c.allNames()
	}

	var observations []domain.Observation
	for page := 1; ; page++ {
		body, err := c.getPage(ctx, names, q.Start, page)
		if err != nil {
			return nil, err
		}
		rows, totalPages, err := c.parsePage(body)
		if err != nil {
			return nil, err
		}
		observations = append(observations, rows...)
		if page >= totalPages {
			break
		}
		if page == maxPages {
			return nil, fmt.Errorf("%w: response reports %d pages, limit is %d", domain.ErrSchemaDrift, totalPages, maxPages)
		}
	}

	if len(observations) == 0 {
		return nil, domain.ErrEmptyPayload
	}
	return domain.SortByDate(observations), nil
}

func (c *Client) allNames() []string {
	names := make([]string, 0)
	for _, code := range c.currencies.Codes() {
		cur, _ := c.currencies.ByCode(code)
		names = append(names, cur.Name)
	}
	return names
}

func (c *Client) getPage(ctx context.Context, names []string, start time.Time, page int) ([]byte, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse endpoint URL: %w", err)
	}
	params := url.Values{}
	params.Set("fields", fields)
	params.Set("filter", fmt.Sprintf("country_currency_desc:in:(%s),record_date:gte:%s",
		strings.Join(names, ","), start.Format(domain.DateLayout)))
	params.Set("sort", "record_date")
	params.Set("page[size]", strconv.Itoa(c.pageSize))
	params.Set("page[number]", strconv.Itoa(page))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for page %d: %w", page, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request for page %d: %v", domain.ErrTransport, page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d for page %d: %s", domain.ErrTransport, resp.StatusCode, page, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read page %d: %v", domain.ErrTransport, page, err)
	}
	return body, nil
}

// parsePage converts one response page into observations. Rows with a
// missing, non-numeric or non-positive rate are skipped.
func (c *Client) parsePage(body []byte) ([]domain.Observation, int, error) {
	if !gjson.ValidBytes(body) {
		return nil, 0, fmt.Errorf("%w: response is not valid JSON", domain.ErrSchemaDrift)
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || !data.IsArray() {
		return nil, 0, fmt.Errorf("%w: response has no data array", domain.ErrSchemaDrift)
	}

	totalPages := 1
	if tp := gjson.GetBytes(body, "meta.total-pages"); tp.Exists() {
		totalPages = int(tp.Int())
	}

	rows := make([]domain.Observation, 0, len(data.Array()))
	var rowErr error
	data.ForEach(func(_, row gjson.Result) bool {
		o, skip, err := c.parseRow(row)
		if err != nil {
			rowErr = err
			return false
		}
		if !skip {
			rows = append(rows, o)
		}
		return true
	})
	if rowErr != nil {
		return nil, 0, rowErr
	}
	return rows, totalPages, nil
}

func (c *Client) parseRow(row gjson.Result) (domain.Observation, bool, error) {
	name := row.Get("country_currency_desc")
	rawDate := row.Get("record_date")
	if !name.Exists() || !rawDate.Exists() {
		return domain.Observation{}, false, fmt.Errorf("%w: row lacks country_currency_desc or record_date", domain.ErrSchemaDrift)
	}

	date, err := time.Parse(domain.DateLayout, rawDate.String())
	if err != nil {
		return domain.Observation{}, false, fmt.Errorf("%w: record_date %q: %v", domain.ErrSchemaDrift, rawDate.String(), err)
	}

	cur, ok := c.currencies.ByName(name.String())
	if !ok {
		return domain.Observation{}, false, fmt.Errorf("%w: %q", domain.ErrUnmappedCurrency, name.String())
	}

	rate, err := decimal.NewFromString(row.Get("exchange_rate").String())
	if err != nil || !rate.IsPositive() {
		logrus.WithFields(logrus.Fields{"currency": cur.Code, "date": rawDate.String(), "rate": row.Get("exchange_rate").String()}).
			Debug("Skipping row with invalid rate")
		return domain.Observation{}, true, nil
	}

	return domain.Observation{
		Date:         date,
		Currency:     cur.Code,
		Rate:         rate.InexactFloat64(),
		CurrencyName: cur.Name,
	}, false, nil
}

// IsAcquisitionError reports whether err came from the remote source rather than local code.
func IsAcquisitionError(err error) bool {
	return errors.Is(err, domain.ErrTransport) ||
		errors.Is(err, domain.ErrEmptyPayload) ||
		errors.Is(err, domain.ErrSchemaDrift) ||
		errors.Is(err, domain.ErrUnmappedCurrency)
}
