package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockbridge/internal/config"
	apperrors "stockbridge/internal/errors"
)

// Client speaks the ERP's generic JSON-RPC envelope: every request is a
// POST of {jsonrpc, method: "call", params: {service, method, args}, id}.
// There are no retries and no timeout handling beyond the transport
// default; a session is not cached, callers re-login per workflow.
type Client struct {
	url      string
	database string
	username string
	password string
	http     *http.Client
	logger   *zap.Logger
}

func NewClient(cfg config.OdooConfig, logger *zap.Logger) *Client {
	return &Client{
		url:      cfg.URL,
		database: cfg.Database,
		username: cfg.Username,
		password: cfg.Password,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      string    `json:"id"`
}

type rpcParams struct {
	Service string        `json:"service"`
	Method  string        `json:"method"`
	Args    []interface{} `json:"args"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// Call sends one synchronous RPC and returns the raw result field. A
// fault object in the response becomes a RemoteFaultError carrying the
// serialized fault; transport failures become InternalError. The
// correlation id only satisfies the envelope shape, it is not persisted.
func (c *Client) Call(ctx context.Context, service, method string, args []interface{}) (json.RawMessage, error) {
	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params: rpcParams{
			Service: service,
			Method:  method,
			Args:    args,
		},
		ID: uuid.New().String(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternalError("encoding rpc request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("building rpc request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewInternalError("calling erp", err)
	}
	defer resp.Body.Close()

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, apperrors.NewInternalError("decoding rpc response", err)
	}

	if len(rpcResp.Error) > 0 {
		c.logger.Warn("erp returned fault",
			zap.String("service", service),
			zap.String("method", method))
		return nil, apperrors.NewRemoteFaultError(string(rpcResp.Error))
	}

	return rpcResp.Result, nil
}

// Login authenticates against the ERP and returns the numeric user id
// used by subsequent execute_kw calls.
func (c *Client) Login(ctx context.Context) (int64, error) {
	result, err := c.Call(ctx, "common", "login", []interface{}{c.database, c.username, c.password})
	if err != nil {
		return 0, err
	}

	var uid int64
	if err := json.Unmarshal(result, &uid); err != nil {
		return 0, apperrors.NewInternalError("decoding login result", err)
	}
	return uid, nil
}

// ExecuteKw invokes a model method through the object service,
// decoding the result into out when out is non-nil. The args/kwargs
// framing matches the ERP convention
// [db, uid, password, model, method, args, kwargs].
func (c *Client) ExecuteKw(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
	if kwargs == nil {
		kwargs = map[string]interface{}{}
	}

	result, err := c.Call(ctx, "object", "execute_kw", []interface{}{
		c.database, uid, c.password, model, method, args, kwargs,
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("decoding %s.%s result", model, method), err)
	}
	return nil
}
