package basket

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// rate feed: pulls live reference prices for basket assets out of remote
// JSON quote services.

// RateSource describes where one asset's reference price lives: an HTTP
// endpoint serving JSON and a jsonpath expression selecting the price value.
type RateSource struct {
	Asset string `json:"asset"`
	URL   string `json:"url"`
	Path  string `json:"path"`
}

// FetchRate retrieves the latest reference price for one source.
func FetchRate(client *http.Client, src RateSource) (decimal.Decimal, error) {
	var jobj any
	if err := jwget(client, src.URL, &jobj); err != nil {
		return decimal.Decimal{}, fmt.Errorf("error in wget %q: %w", src.Asset, err)
	}
	jval, err := jsonpath.Get(src.Path, jobj)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("error parsing %q: %q %w", src.Asset, src.Path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("error parsing %q: %q %s %v", src.Asset, src.Path, "not a number", jval)
	}
	return decimal.NewFromFloat(val), nil
}

// UpdateRates fetches every source and installs the fetched reference prices
// into the exchange. It stops at the first failing source, leaving earlier
// updates in place.
func UpdateRates(client *http.Client, x *RateExchange, sources []RateSource) error {
	for _, src := range sources {
		rate, err := FetchRate(client, src)
		if err != nil {
			return err
		}
		x.SetRate(src.Asset, rate)
	}
	return nil
}

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// get from disk
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	err = c.put(key, resp)
	if err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// DailyClient returns an HTTP client whose responses are cached on disk and
// expire daily, so repeated rate fetches within a day do not hit the quote
// service again.
func DailyClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
