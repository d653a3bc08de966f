package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/sprite-tools-mcp/internal/atlas"
	"github.com/ironsheep/sprite-tools-mcp/internal/detection"
	"github.com/ironsheep/sprite-tools-mcp/internal/imaging"
)

// createSheetFile creates a solid-color test sheet and returns its path
func createSheetFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeSheetPNG(t, img)
}

// createSpriteSheetFile creates a transparent test sheet carrying opaque
// white squares and returns its path
func createSpriteSheetFile(t *testing.T, width, height int, sprites []image.Rectangle) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for _, r := range sprites {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return writeSheetPNG(t, img)
}

func writeSheetPNG(t *testing.T, img image.Image) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode sheet: %v", err)
	}

	return tmpFile.Name()
}

// twoSprites is the standard detection fixture: two 16x16 squares on a
// 64x64 transparent sheet.
func twoSprites() []image.Rectangle {
	return []image.Rectangle{
		image.Rect(4, 4, 20, 20),
		image.Rect(40, 40, 56, 56),
	}
}

func TestHandleToolsCall_SheetLoad(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 100, 80, color.RGBA{255, 0, 0, 255})
	defer os.Remove(sheetPath)

	params := map[string]interface{}{
		"name": "sheet_load",
		"arguments": map[string]interface{}{
			"path": sheetPath,
		},
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_SheetInfo(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 200, 150, color.RGBA{0, 255, 0, 255})
	defer os.Remove(sheetPath)

	params := map[string]interface{}{
		"name": "sheet_info",
		"arguments": map[string]interface{}{
			"path": sheetPath,
		},
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	}

	resp := s.handleToolsCall(req)

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()

	params := map[string]interface{}{
		"name": "sheet_load",
		"arguments": map[string]interface{}{
			"path": "/nonexistent/sheet.png",
		},
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	}

	resp := s.handleToolsCall(req)

	if resp.Error == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code = %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New()

	params := map[string]interface{}{
		"name":      "nonexistent_tool",
		"arguments": map[string]interface{}{},
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	}

	resp := s.handleToolsCall(req)

	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code = %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`invalid json`),
	}

	resp := s.handleToolsCall(req)

	if resp.Error == nil {
		t.Fatal("Expected error for invalid JSON params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code = %d, want -32602", resp.Error.Code)
	}
}

func TestHandleToolsCall_GridCells(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 128, 128, color.RGBA{200, 200, 200, 255})
	defer os.Remove(sheetPath)

	params := map[string]interface{}{
		"name": "grid_cells",
		"arguments": map[string]interface{}{
			"path":        sheetPath,
			"cell_width":  32,
			"cell_height": 32,
		},
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	}

	resp := s.handleToolsCall(req)

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_SpriteDetect(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	params := map[string]interface{}{
		"name": "sprite_detect",
		"arguments": map[string]interface{}{
			"path": sheetPath,
		},
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	}

	resp := s.handleToolsCall(req)

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_SheetPreview(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	params := map[string]interface{}{
		"name": "sheet_preview",
		"arguments": map[string]interface{}{
			"path":        sheetPath,
			"show_grid":   true,
			"show_labels": true,
			"cell_width":  32,
			"cell_height": 32,
		},
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	}

	resp := s.handleToolsCall(req)

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_SpriteExtract_WithScale(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 100, 100, color.RGBA{0, 0, 255, 255})
	defer os.Remove(sheetPath)

	params := map[string]interface{}{
		"name": "sprite_extract",
		"arguments": map[string]interface{}{
			"path":   sheetPath,
			"x":      10,
			"y":      10,
			"width":  40,
			"height": 40,
			"scale":  2.0,
		},
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  paramsJSON,
	}

	resp := s.handleToolsCall(req)

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestExecuteTool_SheetLoad_ReportsRegions(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("sheet_load", args)
	if err != nil {
		t.Fatalf("sheet_load failed: %v", err)
	}
	loaded, ok := result.(*SheetLoadResult)
	if !ok {
		t.Fatalf("result type = %T, want *SheetLoadResult", result)
	}
	if loaded.Width != 64 || loaded.Height != 64 {
		t.Errorf("dimensions = %dx%d, want 64x64", loaded.Width, loaded.Height)
	}
	if loaded.Regions != 0 {
		t.Errorf("fresh session regions = %d, want 0", loaded.Regions)
	}

	// Cutting the sheet into a 2x2 grid shows up on the next load.
	applyArgs, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	if _, err := s.executeTool("grid_apply", applyArgs); err != nil {
		t.Fatalf("grid_apply failed: %v", err)
	}

	result, err = s.executeTool("sheet_load", args)
	if err != nil {
		t.Fatalf("second sheet_load failed: %v", err)
	}
	if got := result.(*SheetLoadResult).Regions; got != 4 {
		t.Errorf("regions after grid_apply = %d, want 4", got)
	}
}

func TestExecuteTool_SheetUnload_DropsSession(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	if _, err := s.executeTool("grid_apply", args); err != nil {
		t.Fatalf("grid_apply failed: %v", err)
	}
	if s.sessions.Len() != 1 {
		t.Fatalf("sessions = %d, want 1", s.sessions.Len())
	}

	result, err := s.executeTool("sheet_unload", args)
	if err != nil {
		t.Fatalf("sheet_unload failed: %v", err)
	}
	unloaded, ok := result.(*SheetUnloadResult)
	if !ok {
		t.Fatalf("result type = %T, want *SheetUnloadResult", result)
	}
	if !unloaded.Unloaded {
		t.Error("Unloaded = false, want true")
	}
	if s.sessions.Len() != 0 {
		t.Errorf("sessions after unload = %d, want 0", s.sessions.Len())
	}

	// Reloading starts a fresh session with no accumulated regions.
	result, err = s.executeTool("sheet_load", args)
	if err != nil {
		t.Fatalf("sheet_load after unload failed: %v", err)
	}
	if got := result.(*SheetLoadResult).Regions; got != 0 {
		t.Errorf("regions after unload = %d, want 0", got)
	}
}

func TestExecuteTool_GridCells(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 128, 128, color.RGBA{200, 200, 200, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("grid_cells", args)
	if err != nil {
		t.Fatalf("grid_cells failed: %v", err)
	}
	cells, ok := result.(*GridCellsResult)
	if !ok {
		t.Fatalf("result type = %T, want *GridCellsResult", result)
	}

	// Default 32x32 layout over 128x128 gives a 4x4 grid.
	if cells.Count != 16 {
		t.Fatalf("Count = %d, want 16", cells.Count)
	}
	first := cells.Cells[0]
	if first.X != 0 || first.Y != 0 || first.Width != 32 || first.Height != 32 {
		t.Errorf("first cell = %+v, want 32x32 at (0,0)", first)
	}
	last := cells.Cells[15]
	if last.X != 96 || last.Y != 96 {
		t.Errorf("last cell at (%d,%d), want (96,96)", last.X, last.Y)
	}
	if last.Index != 15 || last.Row != 3 || last.Col != 3 {
		t.Errorf("last cell index/row/col = %d/%d/%d, want 15/3/3", last.Index, last.Row, last.Col)
	}
}

func TestExecuteTool_GridCells_CustomLayout(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 128, 128, color.RGBA{200, 200, 200, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path":        sheetPath,
		"cell_width":  16,
		"cell_height": 16,
		"origin_x":    8,
		"origin_y":    8,
		"spacing_x":   4,
		"spacing_y":   4,
	})
	result, err := s.executeTool("grid_cells", args)
	if err != nil {
		t.Fatalf("grid_cells failed: %v", err)
	}
	cells := result.(*GridCellsResult)

	// 16px cells with 4px spacing after an 8px origin: 6 fit per axis.
	if cells.Count != 36 {
		t.Fatalf("Count = %d, want 36", cells.Count)
	}
	if first := cells.Cells[0]; first.X != 8 || first.Y != 8 {
		t.Errorf("first cell at (%d,%d), want (8,8)", first.X, first.Y)
	}
}

func TestExecuteTool_GridCells_InvalidConfig(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{200, 200, 200, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path":       sheetPath,
		"cell_width": -5,
	})
	if _, err := s.executeTool("grid_cells", args); err == nil {
		t.Error("Expected error for negative cell width")
	}
}

func TestExecuteTool_GridApply_ThenReapply(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("grid_apply", args)
	if err != nil {
		t.Fatalf("grid_apply failed: %v", err)
	}
	applied, ok := result.(*ApplyResult)
	if !ok {
		t.Fatalf("result type = %T, want *ApplyResult", result)
	}
	if applied.Count != 4 {
		t.Fatalf("Count = %d, want 4", applied.Count)
	}
	if applied.Group == 0 {
		t.Error("Group = 0, want a new group node")
	}
	if applied.GroupName != "Group 1" {
		t.Errorf("GroupName = %q, want %q", applied.GroupName, "Group 1")
	}

	// Re-applying the same layout adds nothing and leaves no empty group.
	result, err = s.executeTool("grid_apply", args)
	if err != nil {
		t.Fatalf("second grid_apply failed: %v", err)
	}
	reapplied := result.(*ApplyResult)
	if reapplied.Count != 0 {
		t.Errorf("re-apply Count = %d, want 0", reapplied.Count)
	}
	if reapplied.Group != 0 {
		t.Errorf("re-apply Group = %d, want 0", reapplied.Group)
	}
	if len(reapplied.Duplicates) != 4 {
		t.Errorf("re-apply duplicates = %d, want 4", len(reapplied.Duplicates))
	}

	sess, ok := s.sessions.Get(sheetPath)
	if !ok {
		t.Fatal("session missing after grid_apply")
	}
	if got := len(sess.Regions()); got != 4 {
		t.Errorf("live regions = %d, want 4", got)
	}
}

func TestExecuteTool_GridApply_NamedGroup(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"name": "Tiles",
	})
	result, err := s.executeTool("grid_apply", args)
	if err != nil {
		t.Fatalf("grid_apply failed: %v", err)
	}
	applied := result.(*ApplyResult)
	if applied.GroupName != "Tiles" {
		t.Errorf("GroupName = %q, want %q", applied.GroupName, "Tiles")
	}
	// Leaves are named after their group.
	if len(applied.Added) > 0 && applied.Added[0].Name != "Tiles 1" {
		t.Errorf("first leaf name = %q, want %q", applied.Added[0].Name, "Tiles 1")
	}
}

func TestExecuteTool_SpriteDetect_FindsSprites(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("sprite_detect", args)
	if err != nil {
		t.Fatalf("sprite_detect failed: %v", err)
	}
	found, ok := result.(*detection.Result)
	if !ok {
		t.Fatalf("result type = %T, want *detection.Result", result)
	}
	if found.Count != 2 {
		t.Fatalf("Count = %d, want 2", found.Count)
	}

	// Regions come back sorted by position, top sprite first.
	r0 := found.Regions[0]
	if r0.X != 4 || r0.Y != 4 || r0.Width != 16 || r0.Height != 16 {
		t.Errorf("first region = %+v, want 16x16 at (4,4)", r0)
	}
	r1 := found.Regions[1]
	if r1.X != 40 || r1.Y != 40 {
		t.Errorf("second region at (%d,%d), want (40,40)", r1.X, r1.Y)
	}
	if found.MaskMode != detection.MaskAlpha {
		t.Errorf("MaskMode = %q, want %q", found.MaskMode, detection.MaskAlpha)
	}
}

func TestExecuteTool_SpriteDetect_InvalidThreshold(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path":            sheetPath,
		"alpha_threshold": 300,
	})
	if _, err := s.executeTool("sprite_detect", args); err == nil {
		t.Error("Expected error for out-of-range alpha threshold")
	}
}

func TestExecuteTool_SpriteDetectApply(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"name": "Detected",
	})
	result, err := s.executeTool("sprite_detect_apply", args)
	if err != nil {
		t.Fatalf("sprite_detect_apply failed: %v", err)
	}
	applied, ok := result.(*ApplyResult)
	if !ok {
		t.Fatalf("result type = %T, want *ApplyResult", result)
	}
	if applied.Count != 2 {
		t.Fatalf("Count = %d, want 2", applied.Count)
	}
	if applied.GroupName != "Detected" {
		t.Errorf("GroupName = %q, want %q", applied.GroupName, "Detected")
	}
	for i, leaf := range applied.Added {
		if leaf.Region.Source != atlas.SourceDetected {
			t.Errorf("leaf %d source = %q, want %q", i, leaf.Region.Source, atlas.SourceDetected)
		}
	}
}

func TestExecuteTool_SpriteAliases(t *testing.T) {
	s := New()
	// Two byte-identical 10x10 squares and one 12x10 that differs.
	sheetPath := createSpriteSheetFile(t, 64, 64, []image.Rectangle{
		image.Rect(2, 2, 12, 12),
		image.Rect(30, 2, 40, 12),
		image.Rect(2, 30, 14, 40),
	})
	defer os.Remove(sheetPath)

	leaves := []map[string]interface{}{
		{"path": sheetPath, "x": 2, "y": 2, "width": 10, "height": 10},
		{"path": sheetPath, "x": 30, "y": 2, "width": 10, "height": 10},
		{"path": sheetPath, "x": 2, "y": 30, "width": 12, "height": 10},
	}
	for i, leaf := range leaves {
		leafJSON, _ := json.Marshal(leaf)
		if _, err := s.executeTool("tree_add_leaf", leafJSON); err != nil {
			t.Fatalf("tree_add_leaf %d failed: %v", i, err)
		}
	}

	args, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("sprite_aliases", args)
	if err != nil {
		t.Fatalf("sprite_aliases failed: %v", err)
	}
	aliases, ok := result.(*AliasesResult)
	if !ok {
		t.Fatalf("result type = %T, want *AliasesResult", result)
	}
	if aliases.Count != 1 {
		t.Fatalf("Count = %d, want 1", aliases.Count)
	}
	g := aliases.Groups[0]
	if len(g.Regions) != 2 || g.Regions[0] != 1 || g.Regions[1] != 2 {
		t.Errorf("alias regions = %v, want [1 2]", g.Regions)
	}
	if g.Width != 10 || g.Height != 10 {
		t.Errorf("alias size = %dx%d, want 10x10", g.Width, g.Height)
	}
}

func TestExecuteTool_SpriteAliases_EmptyTree(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("sprite_aliases", args)
	if err != nil {
		t.Fatalf("sprite_aliases failed: %v", err)
	}
	if got := result.(*AliasesResult).Count; got != 0 {
		t.Errorf("Count = %d, want 0", got)
	}
}

func TestExecuteTool_SpriteExtract(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 100, 100, color.RGBA{0, 0, 255, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"x":      10,
		"y":      10,
		"width":  40,
		"height": 40,
	})
	result, err := s.executeTool("sprite_extract", args)
	if err != nil {
		t.Fatalf("sprite_extract failed: %v", err)
	}
	sprite, ok := result.(*imaging.SpriteResult)
	if !ok {
		t.Fatalf("result type = %T, want *imaging.SpriteResult", result)
	}
	if sprite.Width != 40 || sprite.Height != 40 {
		t.Errorf("sprite = %dx%d, want 40x40", sprite.Width, sprite.Height)
	}
	if sprite.MimeType != "image/png" {
		t.Errorf("MimeType = %q, want image/png", sprite.MimeType)
	}
	if sprite.ImageBase64 == "" {
		t.Error("ImageBase64 is empty")
	}
}

func TestExecuteTool_SpriteExtract_ByNode(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	leafArgs, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath, "x": 4, "y": 4, "width": 16, "height": 16,
	})
	result, err := s.executeTool("tree_add_leaf", leafArgs)
	if err != nil {
		t.Fatalf("tree_add_leaf failed: %v", err)
	}
	leaf := result.(*LeafResult)

	args, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"node": int(leaf.Node),
	})
	result, err = s.executeTool("sprite_extract", args)
	if err != nil {
		t.Fatalf("sprite_extract by node failed: %v", err)
	}
	sprite := result.(*imaging.SpriteResult)
	if sprite.Width != 16 || sprite.Height != 16 {
		t.Errorf("sprite = %dx%d, want 16x16", sprite.Width, sprite.Height)
	}

	// The root is a group; extracting it is refused.
	rootArgs, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"node": 0,
	})
	if _, err := s.executeTool("sprite_extract", rootArgs); err == nil {
		t.Error("Expected error when extracting a group node")
	}
}

func TestExecuteTool_SpriteExtract_ToFile(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 100, 100, color.RGBA{255, 0, 0, 255})
	defer os.Remove(sheetPath)

	outPath := filepath.Join(t.TempDir(), "sprite.png")
	args, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"x":      0,
		"y":      0,
		"width":  50,
		"height": 50,
		"out":    outPath,
	})
	result, err := s.executeTool("sprite_extract", args)
	if err != nil {
		t.Fatalf("sprite_extract failed: %v", err)
	}
	saved, ok := result.(*SpriteSaveResult)
	if !ok {
		t.Fatalf("result type = %T, want *SpriteSaveResult", result)
	}
	if saved.Path != outPath {
		t.Errorf("Path = %q, want %q", saved.Path, outPath)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestExecuteTool_SpriteExtract_OutOfBounds(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{0, 0, 255, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"x":      50,
		"y":      50,
		"width":  40,
		"height": 40,
	})
	if _, err := s.executeTool("sprite_extract", args); err == nil {
		t.Error("Expected error for rectangle outside the sheet")
	}
}

func TestExecuteTool_SpriteThumbnail(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 128, 128, color.RGBA{0, 128, 255, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"x":      0,
		"y":      0,
		"width":  128,
		"height": 128,
	})
	result, err := s.executeTool("sprite_thumbnail", args)
	if err != nil {
		t.Fatalf("sprite_thumbnail failed: %v", err)
	}
	thumb := result.(*imaging.SpriteResult)

	// Default max size is 64.
	if thumb.Width != 64 || thumb.Height != 64 {
		t.Errorf("thumbnail = %dx%d, want 64x64", thumb.Width, thumb.Height)
	}
}

func TestExecuteTool_SpritePalette(t *testing.T) {
	s := New()

	// Left half red, right half blue.
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if x < 8 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	sheetPath := writeSheetPNG(t, img)
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path":  sheetPath,
		"count": 2,
	})
	result, err := s.executeTool("sprite_palette", args)
	if err != nil {
		t.Fatalf("sprite_palette failed: %v", err)
	}
	palette, ok := result.(*imaging.PaletteResult)
	if !ok {
		t.Fatalf("result type = %T, want *imaging.PaletteResult", result)
	}
	if palette.Count != 2 {
		t.Errorf("Count = %d, want 2", palette.Count)
	}

	// Restricting to the red half collapses the palette to one color.
	halfArgs, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"x":      0,
		"y":      0,
		"width":  8,
		"height": 16,
		"count":  1,
	})
	result, err = s.executeTool("sprite_palette", halfArgs)
	if err != nil {
		t.Fatalf("sprite_palette on region failed: %v", err)
	}
	half := result.(*imaging.PaletteResult)
	if half.Count != 1 {
		t.Fatalf("region Count = %d, want 1", half.Count)
	}
	if half.Swatches[0].Hex != "#ff0000" {
		t.Errorf("region swatch = %q, want #ff0000", half.Swatches[0].Hex)
	}
}

func TestExecuteTool_SheetPreview_GridBoxes(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path":      sheetPath,
		"show_grid": true,
	})
	result, err := s.executeTool("sheet_preview", args)
	if err != nil {
		t.Fatalf("sheet_preview failed: %v", err)
	}
	preview, ok := result.(*imaging.PreviewResult)
	if !ok {
		t.Fatalf("result type = %T, want *imaging.PreviewResult", result)
	}
	if preview.Width != 64 || preview.Height != 64 {
		t.Errorf("preview = %dx%d, want 64x64", preview.Width, preview.Height)
	}
	// Default 32x32 layout over 64x64 draws 4 cell outlines.
	if preview.Boxes != 4 {
		t.Errorf("Boxes = %d, want 4", preview.Boxes)
	}
}

func TestExecuteTool_SheetPreview_RegionBoxes(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	applyArgs, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	if _, err := s.executeTool("sprite_detect_apply", applyArgs); err != nil {
		t.Fatalf("sprite_detect_apply failed: %v", err)
	}

	args, _ := json.Marshal(map[string]interface{}{
		"path":         sheetPath,
		"show_regions": true,
		"show_labels":  true,
	})
	result, err := s.executeTool("sheet_preview", args)
	if err != nil {
		t.Fatalf("sheet_preview failed: %v", err)
	}
	if got := result.(*imaging.PreviewResult).Boxes; got != 2 {
		t.Errorf("Boxes = %d, want 2", got)
	}
}

func TestExecuteTool_TreeList(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	applyArgs, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	if _, err := s.executeTool("sprite_detect_apply", applyArgs); err != nil {
		t.Fatalf("sprite_detect_apply failed: %v", err)
	}

	args, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("tree_list", args)
	if err != nil {
		t.Fatalf("tree_list failed: %v", err)
	}
	snap, ok := result.(atlas.Snapshot)
	if !ok {
		t.Fatalf("result type = %T, want atlas.Snapshot", result)
	}
	if snap.ID != atlas.RootID {
		t.Errorf("root id = %d, want %d", snap.ID, atlas.RootID)
	}
	if snap.Name != filepath.Base(sheetPath) {
		t.Errorf("root name = %q, want sheet file name %q", snap.Name, filepath.Base(sheetPath))
	}
	if len(snap.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(snap.Children))
	}
	if got := len(snap.Children[0].Children); got != 2 {
		t.Errorf("group children = %d, want 2", got)
	}
}

func TestExecuteTool_TreeAddGroup(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("tree_add_group", args)
	if err != nil {
		t.Fatalf("tree_add_group failed: %v", err)
	}
	group, ok := result.(atlas.Node)
	if !ok {
		t.Fatalf("result type = %T, want atlas.Node", result)
	}
	if group.Kind != atlas.KindGroup {
		t.Errorf("Kind = %v, want group", group.Kind)
	}
	if group.Name != "Group 1" {
		t.Errorf("Name = %q, want %q", group.Name, "Group 1")
	}

	namedArgs, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"name": "Walk Cycle",
	})
	result, err = s.executeTool("tree_add_group", namedArgs)
	if err != nil {
		t.Fatalf("named tree_add_group failed: %v", err)
	}
	if got := result.(atlas.Node).Name; got != "Walk Cycle" {
		t.Errorf("Name = %q, want %q", got, "Walk Cycle")
	}
}

func TestExecuteTool_TreeAddLeaf(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"name":   "hero",
		"x":      8,
		"y":      8,
		"width":  16,
		"height": 16,
	})
	result, err := s.executeTool("tree_add_leaf", args)
	if err != nil {
		t.Fatalf("tree_add_leaf failed: %v", err)
	}
	leaf, ok := result.(*LeafResult)
	if !ok {
		t.Fatalf("result type = %T, want *LeafResult", result)
	}
	if !leaf.Created {
		t.Error("Created = false, want true")
	}
	if leaf.Name != "hero" {
		t.Errorf("Name = %q, want hero", leaf.Name)
	}
	if leaf.Region.ID != 1 {
		t.Errorf("region id = %d, want 1", leaf.Region.ID)
	}
	want := atlas.Rect{X: 8, Y: 8, Width: 16, Height: 16}
	if leaf.Region.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", leaf.Region.Bounds, want)
	}
	if leaf.Region.Source != atlas.SourceManual {
		t.Errorf("source = %q, want %q", leaf.Region.Source, atlas.SourceManual)
	}

	// Same bounds again resolves to the existing leaf.
	result, err = s.executeTool("tree_add_leaf", args)
	if err != nil {
		t.Fatalf("duplicate tree_add_leaf failed: %v", err)
	}
	dup := result.(*LeafResult)
	if dup.Created {
		t.Error("duplicate Created = true, want false")
	}
	if dup.Node != leaf.Node {
		t.Errorf("duplicate node = %d, want %d", dup.Node, leaf.Node)
	}
}

func TestExecuteTool_TreeAddLeaf_OutOfBounds(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"x":      50,
		"y":      50,
		"width":  32,
		"height": 32,
	})
	if _, err := s.executeTool("tree_add_leaf", args); err == nil {
		t.Error("Expected error for leaf outside the canvas")
	}
}

func TestExecuteTool_TreeRemove_CascadeFreesRegions(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	groupArgs, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("tree_add_group", groupArgs)
	if err != nil {
		t.Fatalf("tree_add_group failed: %v", err)
	}
	group := result.(atlas.Node)

	bounds := []atlas.Rect{
		{X: 0, Y: 0, Width: 16, Height: 16},
		{X: 16, Y: 0, Width: 16, Height: 16},
	}
	for _, b := range bounds {
		leafArgs, _ := json.Marshal(map[string]interface{}{
			"path":   sheetPath,
			"parent": int(group.ID),
			"x":      b.X,
			"y":      b.Y,
			"width":  b.Width,
			"height": b.Height,
		})
		if _, err := s.executeTool("tree_add_leaf", leafArgs); err != nil {
			t.Fatalf("tree_add_leaf failed: %v", err)
		}
	}

	removeArgs, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"node": int(group.ID),
	})
	result, err = s.executeTool("tree_remove", removeArgs)
	if err != nil {
		t.Fatalf("tree_remove failed: %v", err)
	}
	removed, ok := result.(*RemoveResult)
	if !ok {
		t.Fatalf("result type = %T, want *RemoveResult", result)
	}
	if removed.Count != 2 {
		t.Fatalf("Count = %d, want 2", removed.Count)
	}
	if removed.Regions[0] != 1 || removed.Regions[1] != 2 {
		t.Errorf("freed regions = %v, want [1 2]", removed.Regions)
	}

	// Freed ids stay retired; a new leaf gets the next id.
	leafArgs, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"x":      0,
		"y":      0,
		"width":  16,
		"height": 16,
	})
	result, err = s.executeTool("tree_add_leaf", leafArgs)
	if err != nil {
		t.Fatalf("tree_add_leaf after remove failed: %v", err)
	}
	if got := result.(*LeafResult).Region.ID; got != 3 {
		t.Errorf("new region id = %d, want 3", got)
	}
}

func TestExecuteTool_TreeRemove_Root(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"node": 0,
	})
	if _, err := s.executeTool("tree_remove", args); err == nil {
		t.Error("Expected error when removing the root")
	}
}

func TestExecuteTool_TreeRename(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	groupArgs, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("tree_add_group", groupArgs)
	if err != nil {
		t.Fatalf("tree_add_group failed: %v", err)
	}
	group := result.(atlas.Node)

	args, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"node": int(group.ID),
		"name": "Idle",
	})
	result, err = s.executeTool("tree_rename", args)
	if err != nil {
		t.Fatalf("tree_rename failed: %v", err)
	}
	if got := result.(atlas.Node).Name; got != "Idle" {
		t.Errorf("Name = %q, want Idle", got)
	}

	emptyArgs, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"node": int(group.ID),
		"name": "",
	})
	if _, err := s.executeTool("tree_rename", emptyArgs); err == nil {
		t.Error("Expected error for empty name")
	}
}

func TestExecuteTool_TreeReparent(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	groupArgs, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("tree_add_group", groupArgs)
	if err != nil {
		t.Fatalf("tree_add_group failed: %v", err)
	}
	group := result.(atlas.Node)

	leafArgs, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"x":      0,
		"y":      0,
		"width":  16,
		"height": 16,
	})
	result, err = s.executeTool("tree_add_leaf", leafArgs)
	if err != nil {
		t.Fatalf("tree_add_leaf failed: %v", err)
	}
	leaf := result.(*LeafResult)

	args, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"node":   int(leaf.Node),
		"parent": int(group.ID),
	})
	result, err = s.executeTool("tree_reparent", args)
	if err != nil {
		t.Fatalf("tree_reparent failed: %v", err)
	}
	if got := result.(atlas.Node).Parent; got != group.ID {
		t.Errorf("Parent = %d, want %d", got, group.ID)
	}
}

func TestExecuteTool_TreeReparent_Cycle(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	outerArgs, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	result, err := s.executeTool("tree_add_group", outerArgs)
	if err != nil {
		t.Fatalf("tree_add_group failed: %v", err)
	}
	outer := result.(atlas.Node)

	innerArgs, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"parent": int(outer.ID),
	})
	result, err = s.executeTool("tree_add_group", innerArgs)
	if err != nil {
		t.Fatalf("nested tree_add_group failed: %v", err)
	}
	inner := result.(atlas.Node)

	args, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"node":   int(outer.ID),
		"parent": int(inner.ID),
	})
	if _, err := s.executeTool("tree_reparent", args); err == nil {
		t.Error("Expected error when reparenting a group under its descendant")
	}
}

func TestExecuteTool_TreeReorder(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	var nodes []int
	for _, x := range []int{0, 16} {
		leafArgs, _ := json.Marshal(map[string]interface{}{
			"path":   sheetPath,
			"x":      x,
			"y":      0,
			"width":  16,
			"height": 16,
		})
		result, err := s.executeTool("tree_add_leaf", leafArgs)
		if err != nil {
			t.Fatalf("tree_add_leaf failed: %v", err)
		}
		nodes = append(nodes, int(result.(*LeafResult).Node))
	}

	args, _ := json.Marshal(map[string]interface{}{
		"path":  sheetPath,
		"node":  0,
		"order": []int{nodes[1], nodes[0]},
	})
	result, err := s.executeTool("tree_reorder", args)
	if err != nil {
		t.Fatalf("tree_reorder failed: %v", err)
	}
	root := result.(atlas.Node)
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}
	if int(root.Children[0]) != nodes[1] || int(root.Children[1]) != nodes[0] {
		t.Errorf("children = %v, want [%d %d]", root.Children, nodes[1], nodes[0])
	}

	// An order that is not a permutation of the children is refused.
	badArgs, _ := json.Marshal(map[string]interface{}{
		"path":  sheetPath,
		"node":  0,
		"order": []int{nodes[0]},
	})
	if _, err := s.executeTool("tree_reorder", badArgs); err == nil {
		t.Error("Expected error for incomplete order")
	}
}

func TestExecuteTool_TreeSetBounds(t *testing.T) {
	s := New()
	sheetPath := createSheetFile(t, 64, 64, color.RGBA{128, 128, 128, 255})
	defer os.Remove(sheetPath)

	leafArgs, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"x":      0,
		"y":      0,
		"width":  16,
		"height": 16,
	})
	result, err := s.executeTool("tree_add_leaf", leafArgs)
	if err != nil {
		t.Fatalf("tree_add_leaf failed: %v", err)
	}
	leaf := result.(*LeafResult)

	args, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"node":   int(leaf.Node),
		"x":      8,
		"y":      8,
		"width":  20,
		"height": 20,
	})
	result, err = s.executeTool("tree_set_bounds", args)
	if err != nil {
		t.Fatalf("tree_set_bounds failed: %v", err)
	}
	region, ok := result.(atlas.Region)
	if !ok {
		t.Fatalf("result type = %T, want atlas.Region", result)
	}
	if region.ID != leaf.Region.ID {
		t.Errorf("region id changed: %d, want %d", region.ID, leaf.Region.ID)
	}
	want := atlas.Rect{X: 8, Y: 8, Width: 20, Height: 20}
	if region.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", region.Bounds, want)
	}
	if region.Source != atlas.SourceManual {
		t.Errorf("source = %q, want %q", region.Source, atlas.SourceManual)
	}

	badArgs, _ := json.Marshal(map[string]interface{}{
		"path":   sheetPath,
		"node":   int(leaf.Node),
		"x":      60,
		"y":      60,
		"width":  20,
		"height": 20,
	})
	if _, err := s.executeTool("tree_set_bounds", badArgs); err == nil {
		t.Error("Expected error for bounds outside the canvas")
	}
}

func TestExecuteTool_ExportFrames(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	applyArgs, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	if _, err := s.executeTool("sprite_detect_apply", applyArgs); err != nil {
		t.Fatalf("sprite_detect_apply failed: %v", err)
	}

	dir := t.TempDir()
	args, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"dir":  dir,
	})
	result, err := s.executeTool("export_frames", args)
	if err != nil {
		t.Fatalf("export_frames failed: %v", err)
	}
	exported, ok := result.(*imaging.ExportResult)
	if !ok {
		t.Fatalf("result type = %T, want *imaging.ExportResult", result)
	}
	if exported.Count != 2 {
		t.Fatalf("Count = %d, want 2", exported.Count)
	}
	for _, name := range []string{"frame_000.png", "frame_001.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing exported frame %s: %v", name, err)
		}
	}
}

func TestExecuteTool_ExportFrames_RequiresDir(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	if _, err := s.executeTool("export_frames", args); err == nil {
		t.Error("Expected error when dir is missing")
	}
}

func TestExecuteTool_ExportGIF(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	applyArgs, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	if _, err := s.executeTool("sprite_detect_apply", applyArgs); err != nil {
		t.Fatalf("sprite_detect_apply failed: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "anim.gif")
	args, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"out":  outPath,
	})
	result, err := s.executeTool("export_gif", args)
	if err != nil {
		t.Fatalf("export_gif failed: %v", err)
	}
	gifRes, ok := result.(*imaging.GIFResult)
	if !ok {
		t.Fatalf("result type = %T, want *imaging.GIFResult", result)
	}
	if gifRes.Frames != 2 {
		t.Errorf("Frames = %d, want 2", gifRes.Frames)
	}
	if gifRes.FPS != imaging.DefaultGIFFPS {
		t.Errorf("FPS = %d, want %d", gifRes.FPS, imaging.DefaultGIFFPS)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestExecuteTool_ExportGIF_ClampsFPS(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	applyArgs, _ := json.Marshal(map[string]interface{}{"path": sheetPath})
	if _, err := s.executeTool("sprite_detect_apply", applyArgs); err != nil {
		t.Fatalf("sprite_detect_apply failed: %v", err)
	}

	args, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"out":  filepath.Join(t.TempDir(), "fast.gif"),
		"fps":  100,
	})
	result, err := s.executeTool("export_gif", args)
	if err != nil {
		t.Fatalf("export_gif failed: %v", err)
	}
	if got := result.(*imaging.GIFResult).FPS; got != imaging.MaxGIFFPS {
		t.Errorf("FPS = %d, want clamped to %d", got, imaging.MaxGIFFPS)
	}
}

func TestExecuteTool_ExportGIF_NoFrames(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	args, _ := json.Marshal(map[string]interface{}{
		"path": sheetPath,
		"out":  filepath.Join(t.TempDir(), "empty.gif"),
	})
	if _, err := s.executeTool("export_gif", args); err == nil {
		t.Error("Expected error for a tree with no sprites")
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New()
	sheetPath := createSpriteSheetFile(t, 64, 64, twoSprites())
	defer os.Remove(sheetPath)

	exportDir := t.TempDir()
	gifPath := filepath.Join(t.TempDir(), "anim.gif")

	// Test each tool to ensure executeTool correctly dispatches. Tools that
	// address specific node ids are covered by their own tests above;
	// sheet_unload runs last because it drops the session.
	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"sheet_load", map[string]interface{}{"path": sheetPath}},
		{"sheet_info", map[string]interface{}{"path": sheetPath}},
		{"grid_cells", map[string]interface{}{"path": sheetPath}},
		{"grid_apply", map[string]interface{}{"path": sheetPath}},
		{"sprite_detect", map[string]interface{}{"path": sheetPath}},
		{"sprite_detect_apply", map[string]interface{}{"path": sheetPath}},
		{"sprite_aliases", map[string]interface{}{"path": sheetPath}},
		{"sprite_extract", map[string]interface{}{"path": sheetPath, "x": 4, "y": 4, "width": 16, "height": 16}},
		{"sprite_thumbnail", map[string]interface{}{"path": sheetPath, "x": 4, "y": 4, "width": 16, "height": 16}},
		{"sprite_palette", map[string]interface{}{"path": sheetPath, "count": 2}},
		{"sheet_preview", map[string]interface{}{"path": sheetPath, "show_grid": true, "show_regions": true}},
		{"tree_list", map[string]interface{}{"path": sheetPath}},
		{"tree_add_group", map[string]interface{}{"path": sheetPath, "name": "extras"}},
		{"tree_add_leaf", map[string]interface{}{"path": sheetPath, "x": 24, "y": 4, "width": 8, "height": 8}},
		{"export_frames", map[string]interface{}{"path": sheetPath, "dir": exportDir}},
		{"export_gif", map[string]interface{}{"path": sheetPath, "out": gifPath}},
		{"sheet_unload", map[string]interface{}{"path": sheetPath}},
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	_, err := s.executeTool("sheet_load", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}
