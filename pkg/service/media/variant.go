/*
 * @Description: 缩略图变体串的语法解析与图片渲染
 * @Author: 蓝屿
 * @Date: 2026-03-10 09:14:28
 * @LastEditTime: 2026-06-22 16:08:51
 * @LastEditors: 蓝屿
 */
package media

import (
	"bytes"
	"fmt"
	"image"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// 变体串形如 c200x100（裁剪）或 f640x480（适配），宽高均为正整数。
var variantPattern = regexp.MustCompile(`^([cf])([1-9]\d*)x([1-9]\d*)$`)

// imageExts 列出按扩展名识别为图片的后缀，带点、小写。
var imageExts = map[string]bool{
	".jpeg": true,
	".jpe":  true,
	".jpg":  true,
	".png":  true,
}

// Variant 是解析后的缩略图规格。
type Variant struct {
	// Crop 为 true 时居中裁剪到精确尺寸，否则等比缩放到包围盒内。
	Crop   bool
	Width  int
	Height int
}

// ParseVariant 解析变体串，语法不合法时返回 false。
func ParseVariant(spec string) (Variant, bool) {
	m := variantPattern.FindStringSubmatch(spec)
	if m == nil {
		return Variant{}, false
	}
	w, _ := strconv.Atoi(m[2])
	h, _ := strconv.Atoi(m[3])
	return Variant{Crop: m[1] == "c", Width: w, Height: h}, true
}

// IsImageFilename 按扩展名判断文件是否作为图片处理。
func IsImageFilename(filename string) bool {
	return imageExts[strings.ToLower(path.Ext(filename))]
}

// renderVariant 按规格渲染缩略图并编码回源格式。
// 源内容必须是已经解码成功过的图片，这里的解码失败属于存储内容损坏。
func renderVariant(src []byte, v Variant) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("解码源图片失败: %w", err)
	}

	var out image.Image
	if v.Crop {
		out = imaging.Fill(img, v.Width, v.Height, imaging.Center, imaging.Lanczos)
	} else {
		out = imaging.Fit(img, v.Width, v.Height, imaging.Lanczos)
	}

	var encFormat imaging.Format
	switch format {
	case "png":
		encFormat = imaging.PNG
	default:
		encFormat = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, encFormat, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("编码缩略图失败: %w", err)
	}
	return buf.Bytes(), nil
}
