package layout

// 该文件定义排版结果、安全区与字体资源描述，供排版计算、渲染与调试 JSON 共用。

// Size 描述画布尺寸（逻辑像素）。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CardSize 是金句卡片的默认画布尺寸。
var CardSize = Size{Width: 1080, Height: 1350}

// 安全区与字号搜索所用的常量，需与既有视觉效果逐位一致。
const (
	HorizontalPaddingRatio = 0.15 // 左右边距各占画布宽度的比例
	WidthThreshold         = 0.9  // 行宽不得超过可用宽度的比例
	HeightThreshold        = 0.7  // 文本块高度不得超过画布高度的比例
	VerticalPaddingRatio   = 0.15 // 上下边距各占画布高度的比例
	LineHeightFactor       = 1.5  // 行高 = 字号 × 1.5
	ShrinkStep             = 10.0 // 每次缩小的字号
	MinFontSize            = 80.0 // 缩小循环的下限
)

// SafeZone 由画布尺寸派生，是只读的配置值。
type SafeZone struct {
	AvailableWidth  float64 `json:"availableWidth"`  // 去掉左右边距后的宽度
	MaxTextWidth    float64 `json:"maxTextWidth"`    // AvailableWidth × 0.9
	MaxSafeHeight   float64 `json:"maxSafeHeight"`   // 高度 × 0.7
	VerticalPadding float64 `json:"verticalPadding"` // 高度 × 0.15（上下各一份）
}

// NewSafeZone 根据画布尺寸计算安全区。
func NewSafeZone(size Size) SafeZone {
	horizontalPadding := size.Width * HorizontalPaddingRatio
	available := size.Width - horizontalPadding*2
	return SafeZone{
		AvailableWidth:  available,
		MaxTextWidth:    available * WidthThreshold,
		MaxSafeHeight:   size.Height * HeightThreshold,
		VerticalPadding: size.Height * VerticalPaddingRatio,
	}
}

// Result 保存一次排版的行、字号与行高。
// Shrinks/Clamped 等字段仅用于调试输出，不影响绘制。
type Result struct {
	Lines           []string `json:"lines"`
	FontSize        float64  `json:"fontSize"`
	LineHeight      float64  `json:"lineHeight"`
	InitialFontSize float64  `json:"initialFontSize"`
	Shrinks         int      `json:"shrinks"`
	Clamped         bool     `json:"clamped,omitempty"`
}

// Placement 记录每一行文字与上下引号在画布上的位置，y 坐标均为垂直中线。
type Placement struct {
	Lines         []PlacedLine `json:"lines"`
	Open          Glyph        `json:"open"`
	Close         Glyph        `json:"close"`
	TextLeft      float64      `json:"textLeft"`
	TextRight     float64      `json:"textRight"`
	StartY        float64      `json:"startY"`
	ContentHeight float64      `json:"contentHeight"`
}

// PlacedLine 是一行已定位的文字，X 为水平中心。
type PlacedLine struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Glyph 描述一个括号字形，X 为左侧起点。
type Glyph struct {
	Rune string  `json:"rune"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// FontResource 描述字体资源，src 可以是文件路径、内置 embed:* 或 built-in:* 形式。
type FontResource struct {
	Name   string `json:"name"`
	Src    string `json:"src"`
	Style  string `json:"style,omitempty"`
	Family string `json:"family,omitempty"` // 渲染器使用的 Family 名称
}
