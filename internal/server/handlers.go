package server

import (
	"encoding/json"
	"fmt"
	"image"
	"strconv"

	"github.com/ironsheep/sprite-tools-mcp/internal/atlas"
	"github.com/ironsheep/sprite-tools-mcp/internal/detection"
	"github.com/ironsheep/sprite-tools-mcp/internal/grid"
	"github.com/ironsheep/sprite-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "sheet_load", "sprite_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads sheets and sessions as needed
//  4. Calls the appropriate grid/detection/atlas/imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Sheet Management
	case "sheet_load":
		return s.handleSheetLoad(args)
	case "sheet_info":
		return s.handleSheetInfo(args)
	case "sheet_unload":
		return s.handleSheetUnload(args)

	// Grid Layout
	case "grid_cells":
		return s.handleGridCells(args)
	case "grid_apply":
		return s.handleGridApply(args)

	// Sprite Detection
	case "sprite_detect":
		return s.handleSpriteDetect(args)
	case "sprite_detect_apply":
		return s.handleSpriteDetectApply(args)
	case "sprite_aliases":
		return s.handleSpriteAliases(args)

	// Sprite Output
	case "sprite_extract":
		return s.handleSpriteExtract(args)
	case "sprite_thumbnail":
		return s.handleSpriteThumbnail(args)
	case "sprite_palette":
		return s.handleSpritePalette(args)
	case "sheet_preview":
		return s.handleSheetPreview(args)

	// Sprite Tree
	case "tree_list":
		return s.handleTreeList(args)
	case "tree_add_group":
		return s.handleTreeAddGroup(args)
	case "tree_add_leaf":
		return s.handleTreeAddLeaf(args)
	case "tree_remove":
		return s.handleTreeRemove(args)
	case "tree_rename":
		return s.handleTreeRename(args)
	case "tree_reparent":
		return s.handleTreeReparent(args)
	case "tree_reorder":
		return s.handleTreeReorder(args)
	case "tree_set_bounds":
		return s.handleTreeSetBounds(args)

	// Export
	case "export_frames":
		return s.handleExportFrames(args)
	case "export_gif":
		return s.handleExportGIF(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared Helpers ===

// openSession loads a sheet and returns its session, creating the session
// from the sheet's pixel dimensions on first use.
func (s *Server) openSession(path string) (*atlas.Session, image.Image, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, nil, err
	}
	b := img.Bounds()
	return s.sessions.Open(path, b.Dx(), b.Dy()), img, nil
}

// resolveRect picks the pixel rectangle a tool call addresses: the bounds
// of a tree node when one is given, the explicit rectangle otherwise.
func (s *Server) resolveRect(path string, node, x, y, w, h int) (image.Rectangle, error) {
	if node != 0 {
		sess, ok := s.sessions.Get(path)
		if !ok {
			return image.Rectangle{}, fmt.Errorf("no open session for %s", path)
		}
		n, err := sess.Node(atlas.NodeID(node))
		if err != nil {
			return image.Rectangle{}, err
		}
		if n.Region == nil {
			return image.Rectangle{}, fmt.Errorf("node %d is a group, not a sprite", node)
		}
		return n.Region.Bounds.Image(), nil
	}
	return image.Rect(x, y, x+w, y+h), nil
}

// cellRects converts grid cells to tree candidate rectangles.
func cellRects(cells []grid.Cell) []atlas.Rect {
	rects := make([]atlas.Rect, len(cells))
	for i, c := range cells {
		rects[i] = atlas.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
	}
	return rects
}

// detectedRects converts detector output to tree candidate rectangles.
func detectedRects(regions []detection.Region) []atlas.Rect {
	rects := make([]atlas.Rect, len(regions))
	for i, r := range regions {
		rects[i] = atlas.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	}
	return rects
}

// regionFrames converts live regions to frame rectangles in tree order.
func regionFrames(regions []atlas.Region) []image.Rectangle {
	frames := make([]image.Rectangle, len(regions))
	for i, r := range regions {
		frames[i] = r.Bounds.Image()
	}
	return frames
}

// ApplyResult reports an auto-cut batch committed to the sprite tree.
// Group is 0 when every candidate was already present and no group was
// created.
type ApplyResult struct {
	Group      atlas.NodeID      `json:"group"`
	GroupName  string            `json:"group_name,omitempty"`
	Added      []atlas.AddedLeaf `json:"added"`
	Duplicates []atlas.Rect      `json:"duplicates"`
	Rejected   []atlas.Rejection `json:"rejected"`
	Overlaps   []atlas.Overlap   `json:"overlaps"`
	Count      int               `json:"count"`
}

// applyBatch commits candidate rectangles as leaves of a new group under
// the root. When nothing survives resolution the empty group is removed
// again, so re-applying the same layout never piles up empty groups.
func (s *Server) applyBatch(sess *atlas.Session, name string, rects []atlas.Rect, src atlas.Source) (*ApplyResult, error) {
	group, err := sess.AddGroup(atlas.RootID, name)
	if err != nil {
		return nil, err
	}
	n, err := sess.Node(group)
	if err != nil {
		return nil, err
	}
	batch, err := sess.AddLeaves(group, rects, src)
	if err != nil {
		return nil, err
	}

	res := &ApplyResult{
		Group:      group,
		GroupName:  n.Name,
		Added:      batch.Added,
		Duplicates: batch.Duplicates,
		Rejected:   batch.Rejected,
		Overlaps:   batch.Overlaps,
		Count:      len(batch.Added),
	}
	if len(batch.Added) == 0 {
		if _, err := sess.Remove(group); err != nil {
			return nil, err
		}
		res.Group = 0
		res.GroupName = ""
	}
	return res, nil
}

// === Sheet Management Handlers ===

type sheetArgs struct {
	Path string `json:"path"`
}

// SheetLoadResult pairs sheet metadata with the session's live region
// count, so reloading a sheet reports accumulated work.
type SheetLoadResult struct {
	*imaging.SheetInfo
	Regions int `json:"regions"`
}

func (s *Server) handleSheetLoad(args json.RawMessage) (interface{}, error) {
	var a sheetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, _, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	info, err := imaging.LoadSheetInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	return &SheetLoadResult{SheetInfo: info, Regions: len(sess.Regions())}, nil
}

func (s *Server) handleSheetInfo(args json.RawMessage) (interface{}, error) {
	var a sheetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadSheetInfo(s.cache, a.Path)
}

// SheetUnloadResult confirms a sheet was dropped from the cache and its
// session discarded.
type SheetUnloadResult struct {
	Path     string `json:"path"`
	Unloaded bool   `json:"unloaded"`
}

func (s *Server) handleSheetUnload(args json.RawMessage) (interface{}, error) {
	var a sheetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Path)
	s.sessions.Drop(a.Path)
	return &SheetUnloadResult{Path: a.Path, Unloaded: true}, nil
}

// === Grid Layout Handlers ===

// gridLayoutArgs carries the cell layout parameters shared by the grid
// tools.
type gridLayoutArgs struct {
	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`
	OriginX    int `json:"origin_x"`
	OriginY    int `json:"origin_y"`
	SpacingX   int `json:"spacing_x"`
	SpacingY   int `json:"spacing_y"`
	PaddingX   int `json:"padding_x"`
	PaddingY   int `json:"padding_y"`
}

// config converts the arguments to a grid layout, defaulting cell
// dimensions to 32 pixels.
func (a gridLayoutArgs) config() grid.Config {
	cfg := grid.Config{
		CellWidth:  a.CellWidth,
		CellHeight: a.CellHeight,
		OriginX:    a.OriginX,
		OriginY:    a.OriginY,
		SpacingX:   a.SpacingX,
		SpacingY:   a.SpacingY,
		PaddingX:   a.PaddingX,
		PaddingY:   a.PaddingY,
	}
	if cfg.CellWidth == 0 {
		cfg.CellWidth = 32
	}
	if cfg.CellHeight == 0 {
		cfg.CellHeight = 32
	}
	return cfg
}

type gridCellsArgs struct {
	Path string `json:"path"`
	gridLayoutArgs
}

// GridCellsResult lists the cells a layout yields on a sheet.
type GridCellsResult struct {
	Cells []grid.Cell `json:"cells"`
	Count int         `json:"count"`
}

func (s *Server) handleGridCells(args json.RawMessage) (interface{}, error) {
	var a gridCellsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	cells, err := grid.Cells(a.config(), b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	return &GridCellsResult{Cells: cells, Count: len(cells)}, nil
}

type gridApplyArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
	gridLayoutArgs
}

func (s *Server) handleGridApply(args json.RawMessage) (interface{}, error) {
	var a gridApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, img, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	cells, err := grid.Cells(a.config(), b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	return s.applyBatch(sess, a.Name, cellRects(cells), atlas.SourceGrid)
}

// === Sprite Detection Handlers ===

type spriteDetectArgs struct {
	Path           string `json:"path"`
	AlphaThreshold int    `json:"alpha_threshold"`
	MinWidth       int    `json:"min_width"`
	MinHeight      int    `json:"min_height"`
	MergeGap       int    `json:"merge_gap"`
}

// config converts the arguments to detection parameters, defaulting the
// minimum sprite size to 8x8.
func (a spriteDetectArgs) config() (detection.Config, error) {
	if a.AlphaThreshold < 0 || a.AlphaThreshold > 255 {
		return detection.Config{}, fmt.Errorf("alpha_threshold %d out of range 0-255", a.AlphaThreshold)
	}
	cfg := detection.Config{
		AlphaThreshold: uint8(a.AlphaThreshold),
		MinWidth:       a.MinWidth,
		MinHeight:      a.MinHeight,
		MergeGap:       a.MergeGap,
	}
	if cfg.MinWidth == 0 {
		cfg.MinWidth = 8
	}
	if cfg.MinHeight == 0 {
		cfg.MinHeight = 8
	}
	return cfg, nil
}

func (s *Server) handleSpriteDetect(args json.RawMessage) (interface{}, error) {
	var a spriteDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return detection.Detect(img, cfg)
}

type spriteDetectApplyArgs struct {
	spriteDetectArgs
	Name string `json:"name"`
}

func (s *Server) handleSpriteDetectApply(args json.RawMessage) (interface{}, error) {
	var a spriteDetectApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	sess, img, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	found, err := detection.Detect(img, cfg)
	if err != nil {
		return nil, err
	}
	return s.applyBatch(sess, a.Name, detectedRects(found.Regions), atlas.SourceDetected)
}

type spriteAliasesArgs struct {
	Path  string `json:"path"`
	Group int    `json:"group"`
}

// AliasGroupResult is one set of sprite regions with identical pixels.
type AliasGroupResult struct {
	Regions []atlas.RegionID `json:"regions"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
}

// AliasesResult lists groups of byte-identical sprite regions.
type AliasesResult struct {
	Groups []AliasGroupResult `json:"groups"`
	Count  int                `json:"count"`
}

func (s *Server) handleSpriteAliases(args json.RawMessage) (interface{}, error) {
	var a spriteAliasesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, img, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	regions, err := sess.LeafRegions(atlas.NodeID(a.Group))
	if err != nil {
		return nil, err
	}

	found, err := detection.FindAliases(img, regionFrames(regions))
	if err != nil {
		return nil, err
	}

	// Report alias groups by region id rather than frame position.
	res := &AliasesResult{Groups: make([]AliasGroupResult, 0, len(found.Groups)), Count: found.Count}
	for _, g := range found.Groups {
		ids := make([]atlas.RegionID, len(g.Indices))
		for i, idx := range g.Indices {
			ids[i] = regions[idx].ID
		}
		res.Groups = append(res.Groups, AliasGroupResult{Regions: ids, Width: g.Width, Height: g.Height})
	}
	return res, nil
}

// === Sprite Output Handlers ===

type spriteExtractArgs struct {
	Path   string  `json:"path"`
	Node   int     `json:"node"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
	Out    string  `json:"out"`
}

// SpriteSaveResult reports a sprite written to disk.
type SpriteSaveResult struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleSpriteExtract(args json.RawMessage) (interface{}, error) {
	var a spriteExtractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	r, err := s.resolveRect(a.Path, a.Node, a.X, a.Y, a.Width, a.Height)
	if err != nil {
		return nil, err
	}

	if a.Out != "" {
		if err := imaging.SaveSprite(img, r, a.Out); err != nil {
			return nil, err
		}
		return &SpriteSaveResult{Path: a.Out, Width: r.Dx(), Height: r.Dy()}, nil
	}
	return imaging.ExtractSprite(img, r, a.Scale)
}

type spriteThumbnailArgs struct {
	Path    string `json:"path"`
	Node    int    `json:"node"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	MaxSize int    `json:"max_size"`
}

func (s *Server) handleSpriteThumbnail(args json.RawMessage) (interface{}, error) {
	var a spriteThumbnailArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxSize == 0 {
		a.MaxSize = imaging.DefaultThumbnailSize
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	r, err := s.resolveRect(a.Path, a.Node, a.X, a.Y, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return imaging.Thumbnail(img, r, a.MaxSize)
}

type spritePaletteArgs struct {
	Path   string `json:"path"`
	Node   int    `json:"node"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Count  int    `json:"count"`
}

func (s *Server) handleSpritePalette(args json.RawMessage) (interface{}, error) {
	var a spritePaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = imaging.DefaultPaletteSize
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	// No node and no rectangle means the whole sheet.
	r := img.Bounds()
	if a.Node != 0 || a.Width != 0 || a.Height != 0 {
		r, err = s.resolveRect(a.Path, a.Node, a.X, a.Y, a.Width, a.Height)
		if err != nil {
			return nil, err
		}
	}
	return imaging.Palette(img, r, a.Count)
}

type sheetPreviewArgs struct {
	Path         string `json:"path"`
	ShowGrid     bool   `json:"show_grid"`
	ShowRegions  bool   `json:"show_regions"`
	ShowLabels   bool   `json:"show_labels"`
	OutlineColor string `json:"outline_color"`
	gridLayoutArgs
}

func (s *Server) handleSheetPreview(args json.RawMessage) (interface{}, error) {
	var a sheetPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutlineColor == "" {
		a.OutlineColor = "#00FF00"
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var boxes []imaging.PreviewBox
	if a.ShowGrid {
		b := img.Bounds()
		cells, err := grid.Cells(a.config(), b.Dx(), b.Dy())
		if err != nil {
			return nil, err
		}
		for _, c := range cells {
			boxes = append(boxes, imaging.PreviewBox{
				X: c.X, Y: c.Y, Width: c.Width, Height: c.Height,
				Label: strconv.Itoa(c.Index),
			})
		}
	}
	if a.ShowRegions {
		if sess, ok := s.sessions.Get(a.Path); ok {
			for _, r := range sess.Regions() {
				boxes = append(boxes, imaging.PreviewBox{
					X: r.Bounds.X, Y: r.Bounds.Y, Width: r.Bounds.Width, Height: r.Bounds.Height,
					Label: strconv.Itoa(int(r.ID)),
				})
			}
		}
	}

	return imaging.RenderPreview(img, boxes, a.OutlineColor, a.ShowLabels)
}

// === Sprite Tree Handlers ===

type treeNodeArgs struct {
	Path string `json:"path"`
	Node int    `json:"node"`
}

func (s *Server) handleTreeList(args json.RawMessage) (interface{}, error) {
	var a treeNodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, _, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	return sess.Snapshot(atlas.NodeID(a.Node))
}

type treeAddGroupArgs struct {
	Path   string `json:"path"`
	Parent int    `json:"parent"`
	Name   string `json:"name"`
}

func (s *Server) handleTreeAddGroup(args json.RawMessage) (interface{}, error) {
	var a treeAddGroupArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, _, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	id, err := sess.AddGroup(atlas.NodeID(a.Parent), a.Name)
	if err != nil {
		return nil, err
	}
	return sess.Node(id)
}

type treeAddLeafArgs struct {
	Path   string `json:"path"`
	Parent int    `json:"parent"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// LeafResult reports the leaf a call resolved to and whether it was newly
// created or an existing leaf with the same bounds.
type LeafResult struct {
	Node    atlas.NodeID `json:"node"`
	Name    string       `json:"name"`
	Region  atlas.Region `json:"region"`
	Created bool         `json:"created"`
}

func (s *Server) handleTreeAddLeaf(args json.RawMessage) (interface{}, error) {
	var a treeAddLeafArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, _, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	bounds := atlas.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	added, created, err := sess.AddLeaf(atlas.NodeID(a.Parent), a.Name, bounds, atlas.SourceManual)
	if err != nil {
		return nil, err
	}
	return &LeafResult{Node: added.Node, Name: added.Name, Region: added.Region, Created: created}, nil
}

// RemoveResult lists the sprite regions freed by a cascading removal.
type RemoveResult struct {
	Node    atlas.NodeID     `json:"node"`
	Regions []atlas.RegionID `json:"regions"`
	Count   int              `json:"count"`
}

func (s *Server) handleTreeRemove(args json.RawMessage) (interface{}, error) {
	var a treeNodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, _, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	removed, err := sess.Remove(atlas.NodeID(a.Node))
	if err != nil {
		return nil, err
	}
	return &RemoveResult{Node: atlas.NodeID(a.Node), Regions: removed, Count: len(removed)}, nil
}

type treeRenameArgs struct {
	Path string `json:"path"`
	Node int    `json:"node"`
	Name string `json:"name"`
}

func (s *Server) handleTreeRename(args json.RawMessage) (interface{}, error) {
	var a treeRenameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, _, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	if err := sess.Rename(atlas.NodeID(a.Node), a.Name); err != nil {
		return nil, err
	}
	return sess.Node(atlas.NodeID(a.Node))
}

type treeReparentArgs struct {
	Path   string `json:"path"`
	Node   int    `json:"node"`
	Parent int    `json:"parent"`
}

func (s *Server) handleTreeReparent(args json.RawMessage) (interface{}, error) {
	var a treeReparentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, _, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	if err := sess.Reparent(atlas.NodeID(a.Node), atlas.NodeID(a.Parent)); err != nil {
		return nil, err
	}
	return sess.Node(atlas.NodeID(a.Node))
}

type treeReorderArgs struct {
	Path  string `json:"path"`
	Node  int    `json:"node"`
	Order []int  `json:"order"`
}

func (s *Server) handleTreeReorder(args json.RawMessage) (interface{}, error) {
	var a treeReorderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, _, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	order := make([]atlas.NodeID, len(a.Order))
	for i, id := range a.Order {
		order[i] = atlas.NodeID(id)
	}
	if err := sess.Reorder(atlas.NodeID(a.Node), order); err != nil {
		return nil, err
	}
	return sess.Node(atlas.NodeID(a.Node))
}

type treeSetBoundsArgs struct {
	Path   string `json:"path"`
	Node   int    `json:"node"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleTreeSetBounds(args json.RawMessage) (interface{}, error) {
	var a treeSetBoundsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, _, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	bounds := atlas.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	return sess.SetBounds(atlas.NodeID(a.Node), bounds)
}

// === Export Handlers ===

type exportFramesArgs struct {
	Path   string `json:"path"`
	Group  int    `json:"group"`
	Dir    string `json:"dir"`
	Prefix string `json:"prefix"`
	Format string `json:"format"`
}

func (s *Server) handleExportFrames(args json.RawMessage) (interface{}, error) {
	var a exportFramesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	sess, img, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	regions, err := sess.LeafRegions(atlas.NodeID(a.Group))
	if err != nil {
		return nil, err
	}
	return imaging.ExportFrames(img, regionFrames(regions), a.Dir, a.Prefix, a.Format)
}

type exportGIFArgs struct {
	Path  string `json:"path"`
	Group int    `json:"group"`
	Out   string `json:"out"`
	FPS   int    `json:"fps"`
}

func (s *Server) handleExportGIF(args json.RawMessage) (interface{}, error) {
	var a exportGIFArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Out == "" {
		return nil, fmt.Errorf("out is required")
	}
	if a.FPS == 0 {
		a.FPS = imaging.DefaultGIFFPS
	}
	sess, img, err := s.openSession(a.Path)
	if err != nil {
		return nil, err
	}
	regions, err := sess.LeafRegions(atlas.NodeID(a.Group))
	if err != nil {
		return nil, err
	}
	return imaging.ExportGIF(img, regionFrames(regions), a.Out, a.FPS)
}
