package tui

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/studiowebux/printcat/internal/catalog"
	"github.com/studiowebux/printcat/internal/types"
)

func TestSearch_TypingFilters(t *testing.T) {
	m, _ := CreateTestModel(t)

	typeText(m, "VAS")
	AssertModelField(t, "query", m.searchQuery, "VAS")
	AssertModelField(t, "visible", len(m.filteredProducts()), 1)
	AssertModelField(t, "selection follows filter", m.selectedSKU, "VAS-001")

	press(m, "backspace", "backspace", "backspace")
	AssertModelField(t, "query", m.searchQuery, "")
	AssertModelField(t, "visible", len(m.filteredProducts()), 2)

	typeText(m, "keych")
	AssertModelField(t, "name match", m.selectedSKU, "KEY-001")

	press(m, "esc")
	AssertModelField(t, "cleared", m.searchQuery, "")
}

func TestSearch_NoMatchClearsSelection(t *testing.T) {
	m, _ := CreateTestModel(t)

	typeText(m, "zzz")
	AssertModelField(t, "selectedSKU", m.selectedSKU, "")

	press(m, "enter")
	AssertModelField(t, "mode", m.Mode(), ModeNormal)
	AssertModelField(t, "status", m.StatusText(), "No product selected")
}

func TestNavigation_Wraps(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, "down")
	AssertModelField(t, "down", m.selectedSKU, "VAS-001")
	press(m, "down")
	AssertModelField(t, "wrap down", m.selectedSKU, "KEY-001")
	press(m, "up")
	AssertModelField(t, "wrap up", m.selectedSKU, "VAS-001")
}

func TestTabs_SwitchAndWrap(t *testing.T) {
	m, _ := CreateTestModel(t)
	press(m, "down")

	press(m, "right")
	AssertModelField(t, "tab", m.Tab(), TabInventory)
	AssertModelField(t, "selection reset", m.selectedSKU, "KEY-001")

	press(m, "right")
	AssertModelField(t, "wraps to create", m.Tab(), TabCreate)

	press(m, "left")
	AssertModelField(t, "back to search", m.Tab(), TabSearch)
}

func TestTabs_QueriesAreIndependent(t *testing.T) {
	m, _ := CreateTestModel(t)
	typeText(m, "vas")

	press(m, "right")
	AssertModelField(t, "inventory query", m.inventoryQuery, "")
	typeText(m, "key")
	AssertModelField(t, "inventory query", m.inventoryQuery, "key")
	AssertModelField(t, "search query kept", m.searchQuery, "vas")
}

func TestCreateTab_TypingDoesNothing(t *testing.T) {
	m, _ := CreateTestModel(t)
	press(m, "left")

	typeText(m, "abc")
	AssertModelField(t, "query", m.searchQuery, "")
	AssertModelField(t, "mode", m.Mode(), ModeNormal)
}

func TestInventory_AdjustStock(t *testing.T) {
	m, fake := CreateTestModel(t)
	press(m, "right", "enter")
	AssertModelField(t, "pane", m.pane, PaneRight)

	press(m, "+")
	AssertModelField(t, "stored", fake.products[0].Stock(), 4)
	AssertModelField(t, "status", m.StatusText(), "KEY-001 stock: 4")

	press(m, "-", "-", "-", "-")
	AssertModelField(t, "at zero", m.productBySKU("KEY-001").Stock(), 0)
	calls := len(fake.updates)

	press(m, "-")
	AssertModelField(t, "status", m.StatusText(), "Stock is already 0")
	AssertModelField(t, "no extra call", len(fake.updates), calls)

	u := fake.updates[0]
	if u.StockQuantity == nil || u.Name != nil || u.Tags != nil {
		t.Errorf("stock update = %+v", u)
	}

	press(m, "esc")
	AssertModelField(t, "pane", m.pane, PaneLeft)
}

func TestInventory_StockFailure(t *testing.T) {
	m, fake := CreateTestModel(t)
	fake.failOn = map[string]error{"products.update": errString("locked")}
	press(m, "right", "enter", "+")

	AssertModelField(t, "status", m.StatusText(), "Error: locked")
	AssertModelField(t, "unchanged", m.productBySKU("KEY-001").Stock(), 3)
}

func TestInventory_Summary(t *testing.T) {
	products := []types.Product{
		{SKU: "A", StockQuantity: types.IntPtr(3)},
		{SKU: "B", StockQuantity: types.IntPtr(10), SellingPrice: types.IntPtr(1500)},
		{SKU: "C"},
	}

	count, value, low := inventorySummary(products)
	AssertModelField(t, "count", count, 3)
	AssertModelField(t, "value", value, 15000)
	AssertModelField(t, "low", low, 1)

	AssertModelField(t, "stockStatus(0)", stockStatus(0), "Out of Stock")
	AssertModelField(t, "stockStatus(5)", stockStatus(5), "Low Stock")
	AssertModelField(t, "stockStatus(6)", stockStatus(6), "In Stock")
	AssertModelField(t, "formatCents", formatCents(15005), "$150.05")
}

func TestNormal_CopySKU(t *testing.T) {
	m, _ := CreateTestModel(t)
	var copied string
	m.writeClipboard = func(s string) error {
		copied = s
		return nil
	}

	press(m, "ctrl+y")
	AssertModelField(t, "copied", copied, "KEY-001")
	AssertModelField(t, "status", m.StatusText(), "Copied KEY-001 to clipboard")
}

func TestNormal_OpenFolderError(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, "ctrl+o")
	AssertModelField(t, "status", m.StatusText(), "Error opening folder: no file manager")
}

func TestNormal_Refresh(t *testing.T) {
	m, fake := CreateTestModel(t)
	fake.products = fake.products[:1]

	press(m, "ctrl+r")
	AssertModelField(t, "products", len(m.products), 1)
	AssertModelField(t, "status", m.StatusText(), "Data refreshed")

	fake.failAll = errString("offline")
	press(m, "ctrl+r")
	AssertModelField(t, "status", m.StatusText(), "Error: offline")
	AssertModelField(t, "data kept", len(m.products), 1)
}

func TestNormal_RefreshUnreachableService(t *testing.T) {
	m, fake := CreateTestModel(t)
	fake.failAll = &catalog.Error{Type: catalog.ErrTypeNetwork, Op: "GET /products/", Message: "catalog service unreachable"}

	press(m, "ctrl+r")
	AssertModelField(t, "status", m.StatusText(), "Error: catalog service unreachable at http://localhost:8000")
	AssertModelField(t, "data kept", len(m.products), 2)
}

func TestTextInput_CursorEditing(t *testing.T) {
	m, _ := CreateTestModel(t)
	text, cursor := "helo", 3

	m.handleTextInput(&text, &cursor, keyMsg("l"))
	AssertModelField(t, "insert", text, "hello")
	AssertModelField(t, "cursor", cursor, 4)

	m.handleTextInput(&text, &cursor, keyMsg("left"))
	m.handleTextInput(&text, &cursor, keyMsg("backspace"))
	AssertModelField(t, "backspace", text, "helo")
	AssertModelField(t, "cursor", cursor, 2)

	m.handleTextInput(&text, &cursor, keyMsg("ctrl+v"))
	AssertModelField(t, "paste", text, "hepastedlo")

	if m.handleTextInput(&text, &cursor, keyMsg("enter")) {
		t.Error("enter is not a text key")
	}
}

func TestDelete_RecordOnly(t *testing.T) {
	m, fake := CreateTestModel(t)

	press(m, "ctrl+d")
	AssertModelField(t, "mode", m.Mode(), ModeDeleteConfirm)
	AssertModelField(t, "deleteSKU", m.deleteSKU, "KEY-001")

	press(m, "enter")
	AssertModelField(t, "mode", m.Mode(), ModeNormal)
	AssertModelField(t, "status", m.StatusText(), "Product KEY-001 deleted")
	if !slices.Equal(fake.calls, []string{"products.delete KEY-001"}) {
		t.Errorf("calls = %v", fake.calls)
	}
	AssertModelField(t, "products", len(m.products), 1)
	AssertModelField(t, "selection moved", m.selectedSKU, "VAS-001")
}

func TestDelete_WithFilesConfirmed(t *testing.T) {
	m, fake := CreateTestModel(t)

	press(m, "ctrl+d", "2", "enter")
	AssertModelField(t, "mode", m.Mode(), ModeDeleteFileConfirm)

	press(m, "y")
	AssertModelField(t, "mode", m.Mode(), ModeNormal)
	if !slices.Equal(fake.calls, []string{"products.delete KEY-001 +files"}) {
		t.Errorf("calls = %v", fake.calls)
	}
}

func TestDelete_WithFilesCancelled(t *testing.T) {
	m, fake := CreateTestModel(t)

	press(m, "ctrl+d", "down", "enter", "n")
	AssertModelField(t, "mode", m.Mode(), ModeNormal)
	AssertModelField(t, "status", m.StatusText(), "Deletion cancelled")
	AssertModelField(t, "calls", len(fake.calls), 0)
}

func TestDelete_EscCancels(t *testing.T) {
	m, fake := CreateTestModel(t)

	press(m, "ctrl+d", "esc")
	AssertModelField(t, "mode", m.Mode(), ModeNormal)
	AssertModelField(t, "calls", len(fake.calls), 0)
}

func TestDelete_NotOnCreateTab(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, "left", "ctrl+d")
	AssertModelField(t, "mode", m.Mode(), ModeNormal)
}

func TestDelete_RefreshFailureReported(t *testing.T) {
	m, fake := CreateTestModel(t)
	fake.failOn = map[string]error{"products.list": errString("offline")}

	press(m, "ctrl+d", "enter")
	AssertModelField(t, "status", m.StatusText(), "Product KEY-001 deleted; refresh failed: offline")
}

func TestDelete_FailureReported(t *testing.T) {
	m, fake := CreateTestModel(t)
	fake.failOn = map[string]error{"products.delete": errString("Product not found")}

	press(m, "ctrl+d", "enter")
	AssertModelField(t, "status", m.StatusText(), "Error: Product not found")
	AssertModelField(t, "products", len(m.products), 2)
}

func TestViewers_OpenAndClose(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, "ctrl+p")
	AssertModelField(t, "inspect", m.Mode(), ModeInspect)
	AssertModelField(t, "title", m.viewerTitle, "Inspect KEY-001")
	press(m, "esc")
	AssertModelField(t, "closed", m.Mode(), ModeNormal)

	press(m, "f1")
	AssertModelField(t, "help", m.Mode(), ModeHelp)
	press(m, "q")
	AssertModelField(t, "closed", m.Mode(), ModeNormal)
}

func TestViewers_ActivityLog(t *testing.T) {
	m, _ := CreateTestModel(t)
	press(m, "ctrl+d", "enter")

	press(m, "ctrl+t")
	AssertModelField(t, "mode", m.Mode(), ModeActivity)
	AssertModelField(t, "title", m.viewerTitle, "Activity (1)")

	activity := m.activity.(*fakeActivity)
	AssertModelField(t, "action", activity.entries[0].Action, activityDeleteProduct)
	AssertModelField(t, "target", activity.entries[0].Target, "KEY-001")

	press(m, "C")
	AssertModelField(t, "cleared", len(activity.entries), 0)
}

func TestViewers_ActivityTitleShowsTotal(t *testing.T) {
	m, _ := CreateTestModel(t)
	activity := m.activity.(*fakeActivity)
	for i := 0; i < activityLimit+5; i++ {
		activity.Record(activityUpdateProduct, "KEY-001", nil, nil)
	}

	press(m, "ctrl+t")
	AssertModelField(t, "title", m.viewerTitle, fmt.Sprintf("Activity (latest %d of %d)", activityLimit, activityLimit+5))
}

func TestViewers_ActivityUnavailable(t *testing.T) {
	m, _ := CreateTestModel(t)
	m.activity = nil

	press(m, "ctrl+t")
	AssertModelField(t, "mode", m.Mode(), ModeNormal)
	AssertModelField(t, "status", m.StatusText(), "Activity log unavailable")
}

func TestDisplayKeys(t *testing.T) {
	AssertModelField(t, "space", displayKeys(" /left/right"), "space/left/right")
}

func TestViewers_InspectListsProductActivity(t *testing.T) {
	m, _ := CreateTestModel(t)
	press(m, "right", "enter", "+", "esc", "left")

	press(m, "ctrl+p")
	AssertModelField(t, "mode", m.Mode(), ModeInspect)
	if !strings.Contains(m.View(), "Recent changes") {
		t.Error("inspector should list recent changes for the product")
	}
}
