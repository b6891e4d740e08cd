package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"stockbridge/internal/config"
	apperrors "stockbridge/internal/errors"
)

// Client wraps the storefront Admin API: a GraphQL lookup to resolve an
// inventory item by SKU and a REST call to set its available quantity.
type Client struct {
	storeDomain string
	accessToken string
	apiVersion  string
	locationID  int64
	http        *http.Client
	logger      *zap.Logger
}

func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	return &Client{
		storeDomain: cfg.StoreDomain,
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
		locationID:  cfg.LocationID,
		http:        &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type variantLookupResponse struct {
	Data struct {
		ProductVariants struct {
			Edges []struct {
				Node struct {
					InventoryItem struct {
						ID string `json:"id"`
					} `json:"inventoryItem"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"productVariants"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FindInventoryItemBySKU resolves the numeric inventory item id for a
// SKU through an exact-match GraphQL variant query. The id arrives as a
// composite gid (gid://shopify/InventoryItem/123); only the trailing
// segment is kept. A missing variant is a NotFoundError; inventory
// records are never created here.
func (c *Client) FindInventoryItemBySKU(ctx context.Context, sku string) (int64, error) {
	query := fmt.Sprintf(
		`{ productVariants(first: 1, query: %q) { edges { node { inventoryItem { id } } } } }`,
		fmt.Sprintf("sku:%q", sku),
	)

	var resp variantLookupResponse
	if err := c.graphql(ctx, query, &resp); err != nil {
		return 0, err
	}
	if len(resp.Errors) > 0 {
		return 0, apperrors.NewInternalError("variant lookup failed", fmt.Errorf("%s", resp.Errors[0].Message))
	}

	edges := resp.Data.ProductVariants.Edges
	if len(edges) == 0 {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("no storefront variant matches sku %q", sku))
	}

	gid := edges[0].Node.InventoryItem.ID
	id, err := parseGID(gid)
	if err != nil {
		return 0, apperrors.NewInternalError("parsing inventory item id", err)
	}
	return id, nil
}

// SetInventoryLevel sets the absolute available quantity for an
// inventory item at the configured location. Last write wins; there is
// no ordering guarantee across concurrent stock notifications.
func (c *Client) SetInventoryLevel(ctx context.Context, inventoryItemID, available int64) error {
	payload := map[string]interface{}{
		"location_id":       c.locationID,
		"inventory_item_id": inventoryItemID,
		"available":         available,
	}

	url := fmt.Sprintf("https://%s/admin/api/%s/inventory_levels/set.json", c.storeDomain, c.apiVersion)
	resp, err := c.post(ctx, url, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr json.RawMessage
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return apperrors.NewInternalError(
			fmt.Sprintf("inventory set returned %d", resp.StatusCode),
			fmt.Errorf("%s", string(apiErr)),
		)
	}

	c.logger.Info("inventory level set",
		zap.Int64("inventoryItemId", inventoryItemID),
		zap.Int64("locationId", c.locationID),
		zap.Int64("available", available))
	return nil
}

func (c *Client) graphql(ctx context.Context, query string, out interface{}) error {
	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.storeDomain, c.apiVersion)
	resp, err := c.post(ctx, url, graphqlRequest{Query: query})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewInternalError("decoding storefront response", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternalError("encoding storefront request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("building storefront request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewInternalError("calling storefront", err)
	}
	return resp, nil
}

// parseGID keeps the trailing segment of a composite resource id.
func parseGID(gid string) (int64, error) {
	tail := gid
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		tail = gid[i+1:]
	}
	return strconv.ParseInt(tail, 10, 64)
}
