package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"stockbridge/internal/domain"
	apperrors "stockbridge/internal/errors"
)

// Mock implementations

type erpCall struct {
	Model  string
	Method string
	Args   []interface{}
}

type mockERPClient struct {
	LoginFunc     func(ctx context.Context) (int64, error)
	ExecuteKwFunc func(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error

	calls []erpCall
}

func (m *mockERPClient) Login(ctx context.Context) (int64, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx)
	}
	return 7, nil
}

func (m *mockERPClient) ExecuteKw(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
	m.calls = append(m.calls, erpCall{Model: model, Method: method, Args: args})
	return m.ExecuteKwFunc(ctx, uid, model, method, args, kwargs, out)
}

func (m *mockERPClient) callsTo(model, method string) []erpCall {
	var matched []erpCall
	for _, c := range m.calls {
		if c.Model == model && c.Method == method {
			matched = append(matched, c)
		}
	}
	return matched
}

// setOut writes a canned value into ExecuteKw's out parameter the same
// way the real client does, through a JSON round trip.
func setOut(t *testing.T, out interface{}, value interface{}) {
	t.Helper()
	if out == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshaling canned value: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshaling canned value: %v", err)
	}
}

func newTestOrder() domain.Order {
	return domain.Order{
		Name:      "#1001",
		Email:     "a@b.com",
		FirstName: "A",
		LastName:  "B",
		LineItems: []domain.LineItem{
			{SKU: "X1", Quantity: 2, Price: "9.99", Title: "Widget"},
		},
	}
}

// Tests

func TestRelayOrder_ExistingPartnerReused(t *testing.T) {
	erp := &mockERPClient{}
	erp.ExecuteKwFunc = func(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
		switch {
		case model == "res.partner" && method == "search_read":
			setOut(t, out, []map[string]interface{}{{"id": 12}})
		case model == "product.product" && method == "search_read":
			setOut(t, out, []map[string]interface{}{{"id": 31}})
		case model == "sale.order" && method == "create":
			values := args[0].(map[string]interface{})
			if values["partner_id"] != int64(12) {
				t.Errorf("expected partner_id 12, got %v", values["partner_id"])
			}
			setOut(t, out, 99)
		}
		return nil
	}

	uc := NewRelayOrderUseCase(erp, zap.NewNop())

	saleID, err := uc.RelayOrder(context.Background(), newTestOrder())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saleID != 99 {
		t.Errorf("expected sale id 99, got %d", saleID)
	}

	if creates := erp.callsTo("res.partner", "create"); len(creates) != 0 {
		t.Errorf("expected no partner create, got %d", len(creates))
	}
	if lookups := erp.callsTo("res.partner", "search_read"); len(lookups) != 1 {
		t.Errorf("expected exactly one partner lookup, got %d", len(lookups))
	}
}

func TestRelayOrder_NewPartnerCreatedWithConcatenatedName(t *testing.T) {
	erp := &mockERPClient{}
	erp.ExecuteKwFunc = func(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
		switch {
		case model == "res.partner" && method == "search_read":
			setOut(t, out, []map[string]interface{}{})
		case model == "res.partner" && method == "create":
			values := args[0].(map[string]interface{})
			if values["name"] != "A B" {
				t.Errorf("expected partner name %q, got %v", "A B", values["name"])
			}
			if values["email"] != "a@b.com" {
				t.Errorf("expected partner email, got %v", values["email"])
			}
			if _, present := values["phone"]; present {
				t.Errorf("expected no phone field when order has none")
			}
			setOut(t, out, 13)
		case model == "product.product" && method == "search_read":
			setOut(t, out, []map[string]interface{}{{"id": 31}})
		case model == "sale.order" && method == "create":
			setOut(t, out, 100)
		}
		return nil
	}

	uc := NewRelayOrderUseCase(erp, zap.NewNop())

	_, err := uc.RelayOrder(context.Background(), newTestOrder())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if creates := erp.callsTo("res.partner", "create"); len(creates) != 1 {
		t.Fatalf("expected exactly one partner create, got %d", len(creates))
	}
}

func TestRelayOrder_PhoneSentOnPartnerCreate(t *testing.T) {
	order := newTestOrder()
	order.Phone = "555-0100"

	erp := &mockERPClient{}
	erp.ExecuteKwFunc = func(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
		switch {
		case model == "res.partner" && method == "search_read":
			setOut(t, out, []map[string]interface{}{})
		case model == "res.partner" && method == "create":
			values := args[0].(map[string]interface{})
			if values["phone"] != "555-0100" {
				t.Errorf("expected phone to be sent, got %v", values["phone"])
			}
			setOut(t, out, 13)
		case model == "product.product" && method == "search_read":
			setOut(t, out, []map[string]interface{}{{"id": 31}})
		case model == "sale.order" && method == "create":
			setOut(t, out, 100)
		}
		return nil
	}

	uc := NewRelayOrderUseCase(erp, zap.NewNop())

	if _, err := uc.RelayOrder(context.Background(), order); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestRelayOrder_UnmatchedSKUSkipped(t *testing.T) {
	order := newTestOrder()
	order.LineItems = []domain.LineItem{
		{SKU: "GONE", Quantity: 1, Price: "1.00", Title: "Missing"},
		{SKU: "X1", Quantity: 2, Price: "9.99", Title: "Widget"},
		{SKU: "X2", Quantity: 1, Price: "4.50", Title: "Gadget"},
	}

	productIDs := map[string]int64{"X1": 31, "X2": 32}

	erp := &mockERPClient{}
	erp.ExecuteKwFunc = func(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
		switch {
		case model == "res.partner" && method == "search_read":
			setOut(t, out, []map[string]interface{}{{"id": 12}})
		case model == "product.product" && method == "search_read":
			filter := args[0].([]interface{})[0].([]interface{})
			sku := filter[2].(string)
			if id, ok := productIDs[sku]; ok {
				setOut(t, out, []map[string]interface{}{{"id": id}})
			} else {
				setOut(t, out, []map[string]interface{}{})
			}
		case model == "sale.order" && method == "create":
			values := args[0].(map[string]interface{})
			lines := values["order_line"].([]interface{})
			if len(lines) != 2 {
				t.Fatalf("expected 2 resolved lines, got %d", len(lines))
			}
			// Lines keep the original item order, minus the miss.
			first := lines[0].([]interface{})[2].(map[string]interface{})
			second := lines[1].([]interface{})[2].(map[string]interface{})
			if first["product_id"] != int64(31) || second["product_id"] != int64(32) {
				t.Errorf("expected lines [31 32], got [%v %v]", first["product_id"], second["product_id"])
			}
			if first["product_uom_qty"] != 2.0 {
				t.Errorf("expected quantity 2, got %v", first["product_uom_qty"])
			}
			if first["price_unit"] != 9.99 {
				t.Errorf("expected price 9.99, got %v", first["price_unit"])
			}
			if first["name"] != "Widget" {
				t.Errorf("expected title Widget, got %v", first["name"])
			}
			setOut(t, out, 100)
		}
		return nil
	}

	uc := NewRelayOrderUseCase(erp, zap.NewNop())

	if _, err := uc.RelayOrder(context.Background(), order); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestRelayOrder_AllSKUsMiss_NoOrderCreated(t *testing.T) {
	erp := &mockERPClient{}
	erp.ExecuteKwFunc = func(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
		switch {
		case model == "res.partner" && method == "search_read":
			setOut(t, out, []map[string]interface{}{{"id": 12}})
		case model == "product.product" && method == "search_read":
			setOut(t, out, []map[string]interface{}{})
		}
		return nil
	}

	uc := NewRelayOrderUseCase(erp, zap.NewNop())

	_, err := uc.RelayOrder(context.Background(), newTestOrder())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := apperrors.IsNoValidProductsError(err); !ok {
		t.Errorf("expected NoValidProductsError, got %T", err)
	}

	if creates := erp.callsTo("sale.order", "create"); len(creates) != 0 {
		t.Errorf("expected no sale order create, got %d", len(creates))
	}
}

func TestRelayOrder_SaleOrderConfirmedAfterCreate(t *testing.T) {
	erp := &mockERPClient{}
	erp.ExecuteKwFunc = func(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
		switch {
		case method == "search_read":
			setOut(t, out, []map[string]interface{}{{"id": 12}})
		case model == "sale.order" && method == "create":
			setOut(t, out, 101)
		case model == "sale.order" && method == "action_confirm":
			ids := args[0].([]interface{})
			if len(ids) != 1 || ids[0] != int64(101) {
				t.Errorf("expected confirm of sale 101, got %v", ids)
			}
		}
		return nil
	}

	uc := NewRelayOrderUseCase(erp, zap.NewNop())

	saleID, err := uc.RelayOrder(context.Background(), newTestOrder())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saleID != 101 {
		t.Errorf("expected sale id 101, got %d", saleID)
	}

	if confirms := erp.callsTo("sale.order", "action_confirm"); len(confirms) != 1 {
		t.Errorf("expected exactly one confirm call, got %d", len(confirms))
	}
}

func TestRelayOrder_LoginFailureAborts(t *testing.T) {
	erp := &mockERPClient{
		LoginFunc: func(ctx context.Context) (int64, error) {
			return 0, apperrors.NewRemoteFaultError(`{"message":"AccessDenied"}`)
		},
		ExecuteKwFunc: func(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
			t.Fatal("no data call expected after failed login")
			return nil
		},
	}

	uc := NewRelayOrderUseCase(erp, zap.NewNop())

	_, err := uc.RelayOrder(context.Background(), newTestOrder())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := apperrors.IsRemoteFaultError(err); !ok {
		t.Errorf("expected RemoteFaultError, got %T", err)
	}
}

func TestRelayOrder_FaultDuringProductSearchAborts(t *testing.T) {
	erp := &mockERPClient{}
	erp.ExecuteKwFunc = func(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
		switch {
		case model == "res.partner" && method == "search_read":
			setOut(t, out, []map[string]interface{}{{"id": 12}})
			return nil
		case model == "product.product" && method == "search_read":
			return apperrors.NewRemoteFaultError(`{"message":"boom"}`)
		}
		return nil
	}

	uc := NewRelayOrderUseCase(erp, zap.NewNop())

	_, err := uc.RelayOrder(context.Background(), newTestOrder())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := apperrors.IsRemoteFaultError(err); !ok {
		t.Errorf("expected RemoteFaultError, got %T", err)
	}

	if creates := erp.callsTo("sale.order", "create"); len(creates) != 0 {
		t.Errorf("expected no sale order create after fault, got %d", len(creates))
	}
}

func TestRelayOrder_UnparseablePriceSkipsLine(t *testing.T) {
	order := newTestOrder()
	order.LineItems = []domain.LineItem{
		{SKU: "X1", Quantity: 1, Price: "not-a-price", Title: "Bad"},
	}

	erp := &mockERPClient{}
	erp.ExecuteKwFunc = func(ctx context.Context, uid int64, model, method string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
		if method == "search_read" {
			setOut(t, out, []map[string]interface{}{{"id": 31}})
		}
		return nil
	}

	uc := NewRelayOrderUseCase(erp, zap.NewNop())

	_, err := uc.RelayOrder(context.Background(), order)
	if _, ok := apperrors.IsNoValidProductsError(err); !ok {
		t.Errorf("expected NoValidProductsError, got %v", err)
	}
}
