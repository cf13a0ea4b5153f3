package soap

import (
	"context"
	"crypto/tls"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response is the flattened body of a SOAP response: every leaf element's
// character data, keyed by the element's local name. Nested wrappers
// (e.g. SalePaymentRequestResult) are walked through, so drivers read
// bank fields like Status or Token directly.
type Response map[string]string

// Get returns the value for key, or "" when absent.
func (r Response) Get(key string) string {
	return r[key]
}

// Has reports whether the response carries the given field.
func (r Response) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Fault is a fault signaled by the remote gateway itself (soap:Fault).
type Fault struct {
	Code    string
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.Message)
}

// Caller invokes a named remote operation with a structured payload and
// returns the structured response. Implemented by *Client; swapped for a
// fake in tests.
type Caller interface {
	Call(ctx context.Context, endpoint, action string, body map[string]any) (Response, error)
}

// Client is a SOAP 1.1 RPC client bound to a single namespace.
type Client struct {
	r         *resty.Client
	namespace string
}

// NewClient creates a SOAP client for the given operation namespace.
func NewClient(namespace string) *Client {
	r := resty.New().SetTimeout(30 * time.Second)

	return &Client{r: r, namespace: namespace}
}

// WithTimeout sets a custom timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.r.SetTimeout(d)
	return c
}

// WithInsecureSkipVerify disables TLS verification.
func (c *Client) WithInsecureSkipVerify() *Client {
	c.r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	return c
}

// Call invokes the named operation against endpoint and flattens the
// response body. A soap:Fault in the response is returned as *Fault;
// network errors and unparsable bodies are returned as-is.
func (c *Client) Call(ctx context.Context, endpoint, action string, body map[string]any) (Response, error) {
	envelope := c.buildEnvelope(action, body)

	resp, err := c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/xml; charset=utf-8").
		SetHeader("SOAPAction", c.namespace+"/"+action).
		SetBody(envelope).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("soap call %s: %w", action, err)
	}

	fields, fault, err := parseEnvelope(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("soap call %s: %w", action, err)
	}
	if fault != nil {
		return nil, fault
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("soap call %s: unexpected status %d", action, resp.StatusCode())
	}

	return fields, nil
}

// buildEnvelope renders the request envelope with body fields in sorted
// order so requests are deterministic.
func (c *Client) buildEnvelope(action string, body map[string]any) string {
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">`)
	b.WriteString("<soap:Body>")
	fmt.Fprintf(&b, `<%s xmlns=%q>`, action, c.namespace)
	for _, k := range keys {
		b.WriteString("<" + k + ">")
		xml.EscapeText(&b, []byte(fmt.Sprint(body[k])))
		b.WriteString("</" + k + ">")
	}
	fmt.Fprintf(&b, "</%s>", action)
	b.WriteString("</soap:Body>")
	b.WriteString("</soap:Envelope>")

	return b.String()
}

// parseEnvelope walks the response document collecting leaf element text
// by local name. When a Fault element is present the faultcode and
// faultstring are extracted instead.
func parseEnvelope(raw []byte) (Response, *Fault, error) {
	dec := xml.NewDecoder(strings.NewReader(string(raw)))

	fields := Response{}
	var stack []string
	var text strings.Builder
	inFault := false
	fault := &Fault{}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("malformed response: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Fault" {
				inFault = true
			}
			stack = append(stack, t.Name.Local)
			text.Reset()
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(stack) > 0 && stack[len(stack)-1] == t.Name.Local {
				value := strings.TrimSpace(text.String())
				if value != "" {
					switch {
					case inFault && t.Name.Local == "faultcode":
						fault.Code = value
					case inFault && t.Name.Local == "faultstring":
						fault.Message = value
					default:
						fields[t.Name.Local] = value
					}
				}
				stack = stack[:len(stack)-1]
			}
			text.Reset()
		}
	}

	if inFault {
		return nil, fault, nil
	}
	if len(fields) == 0 {
		return Response{}, nil, nil
	}

	return fields, nil, nil
}
