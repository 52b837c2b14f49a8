package app

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"pomelo-bot/internal/domain/entity"
)

// User-facing reply templates. The bot answers in Thai, matching the audience
// of the LINE channel it serves.
const (
	MsgGreeting = "สวัสดีค่ะ 🍊 ส่งรูปใบหรือผลส้มโอเข้ามาได้เลย เดี๋ยวช่วยวิเคราะห์โรคให้นะคะ"

	MsgUsage = `วิธีใช้งาน:
1. ถ่ายรูปใบหรือผลส้มโอที่สงสัยว่าเป็นโรคให้ชัดเจน
2. ส่งรูปเข้ามาในแชทนี้
3. รอสักครู่ ระบบจะตอบชื่อโรคพร้อมระดับความมั่นใจ

พิมพ์ "สวัสดี" เพื่อทักทายได้เสมอค่ะ`

	MsgFallback = `ยังไม่เข้าใจข้อความนี้ค่ะ 🙏 ส่งรูปใบหรือผลส้มโอเข้ามาเพื่อวิเคราะห์โรค หรือพิมพ์ "วิธีใช้" เพื่อดูวิธีใช้งาน`

	MsgNoDisease = "ไม่พบร่องรอยของโรคในภาพ หรือความมั่นใจต่ำกว่าเกณฑ์"

	MsgProcessingError = "ขออภัยค่ะ ไม่สามารถประมวลผลรูปภาพนี้ได้ กรุณาลองส่งรูปใหม่อีกครั้ง"

	MsgModelUnavailable = "ขออภัยค่ะ ระบบวิเคราะห์โรคยังไม่พร้อมใช้งานในขณะนี้ กรุณาลองใหม่ภายหลัง"

	resultHeader = "ผลการวิเคราะห์:"
)

// displayNames maps model class names to Thai display names. Unmapped names
// pass through unchanged so an unexpected class still yields a usable reply.
var displayNames = map[string]string{
	"Canker":     "โรคแคงเกอร์",
	"Greening":   "โรคกรีนนิ่ง",
	"Leaf Miner": "หนอนชอนใบ",
	"Melanose":   "โรคเมลาโนส",
	"Scab":       "โรคสแคบ",
	"Sooty Mold": "โรคราดำ",
}

// DisplayName returns the localized name for a model class.
func DisplayName(className string) string {
	if th, ok := displayNames[className]; ok {
		return th
	}
	return className
}

// Percent renders a 0..1 confidence as an integer percent, rounded to the
// nearest whole percent.
func Percent(confidence float64) int {
	return int(math.Round(confidence * 100))
}

// FormatResult renders a reduced result set as reply text. Entries are sorted
// by descending confidence so the most likely disease is listed first.
func FormatResult(set *entity.ResultSet) string {
	if set == nil || set.Empty() {
		return MsgNoDisease
	}

	entries := set.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Confidence > entries[j].Confidence
	})

	var b strings.Builder
	b.WriteString(resultHeader)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n- %s (ความมั่นใจ: %d%%)", DisplayName(e.ClassName), Percent(e.Confidence))
	}
	return b.String()
}
