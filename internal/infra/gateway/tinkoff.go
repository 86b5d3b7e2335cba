package gateway

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"storent/internal/pkg/config"
	"storent/internal/pkg/errs"
	"storent/internal/usecase/commands"
)

var errInitRejected = errs.New("gateway rejected init request")

// TinkoffGateway talks to the acquiring API. All requests and callbacks are
// signed with the canonical token over the flat request fields.
type TinkoffGateway struct {
	terminalKey string
	password    string
	baseURL     string
	client      *http.Client
}

func NewTinkoffGateway(cfg config.GatewayConfig) commands.PaymentGateway {
	return &TinkoffGateway{
		terminalKey: cfg.TerminalKey,
		password:    cfg.Password,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

type initRequestBody struct {
	TerminalKey string `json:"TerminalKey"`
	Amount      int64  `json:"Amount"`
	OrderID     string `json:"OrderId"`
	Description string `json:"Description,omitempty"`
	Token       string `json:"Token"`
}

type initResponseBody struct {
	Success    bool   `json:"Success"`
	ErrorCode  string `json:"ErrorCode"`
	Message    string `json:"Message"`
	Status     string `json:"Status"`
	PaymentID  string `json:"PaymentId"`
	PaymentURL string `json:"PaymentURL"`
}

func (g *TinkoffGateway) Init(ctx context.Context, req commands.GatewayInitRequest) (*commands.GatewayInitResult, error) {
	body := initRequestBody{
		TerminalKey: g.terminalKey,
		Amount:      req.AmountCents,
		OrderID:     req.OrderID,
		Description: req.Description,
	}
	body.Token = CanonicalToken(map[string]string{
		"TerminalKey": body.TerminalKey,
		"Amount":      strconv.FormatInt(body.Amount, 10),
		"OrderId":     body.OrderID,
		"Description": body.Description,
	}, g.password)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode init request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/Init", bytes.NewReader(payload))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build init request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, errs.Wrap(err, "init request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(fmt.Sprintf("unexpected init response status %d", resp.StatusCode))
	}

	var parsed initResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errs.Wrap(err, "failed to decode init response")
	}
	if !parsed.Success {
		return nil, errs.Mark(errs.New("init rejected: "+parsed.Message), errInitRejected)
	}

	return &commands.GatewayInitResult{
		GatewayPaymentID: parsed.PaymentID,
		PaymentURL:       parsed.PaymentURL,
		Status:           parsed.Status,
	}, nil
}

func (g *TinkoffGateway) VerifyNotification(params map[string]string) bool {
	received, ok := params["Token"]
	if !ok || received == "" {
		return false
	}

	expected := CanonicalToken(params, g.password)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(received)), []byte(expected)) == 1
}

// CanonicalToken computes the signature over the flat request fields:
// reserved keys (Token, Receipt, DATA) are dropped, Password is mixed in,
// the remaining values are concatenated in lexicographic key order and
// hashed with SHA-256.
func CanonicalToken(params map[string]string, password string) string {
	fields := make(map[string]string, len(params)+1)
	for k, v := range params {
		switch k {
		case "Token", "Receipt", "DATA":
			continue
		}
		fields[k] = v
	}
	fields["Password"] = password

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fields[k])
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
