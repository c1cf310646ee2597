package main

import (
	"fmt"
	"strings"

	"github.com/ikkim/flyer-backend/internal/app/service"
	"github.com/xuri/excelize/v2"
)

type importSummary struct {
	Total   int
	Skipped int
}

// headerAliases maps accepted header captions to an input column.
var headerAliases = map[string]string{
	"shopname":     "shop",
	"shop_name":    "shop",
	"매장명":          "shop",
	"상호명":          "shop",
	"managername":  "manager",
	"manager_name": "manager",
	"담당자":          "manager",
	"담당자명":         "manager",
	"phone":        "phone",
	"연락처":          "phone",
	"전화번호":         "phone",
	"kakaourl":     "kakao",
	"kakao_url":    "kakao",
	"카카오톡":         "kakao",
	"오픈채팅":         "kakao",
	"notes":        "notes",
	"메모":           "notes",
	"비고":           "notes",
}

// readRequestsFromXLSX reads the first sheet. The first row is a header naming
// the columns; shop name and manager name are required.
func readRequestsFromXLSX(filePath string) ([]service.SubmitRequestInput, importSummary, error) {
	var summary importSummary

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, summary, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, summary, fmt.Errorf("no data found in XLSX file")
	}

	columns := mapHeader(rows[0])
	if _, ok := columns["shop"]; !ok {
		return nil, summary, fmt.Errorf("shop name column not found in header %v", rows[0])
	}
	if _, ok := columns["manager"]; !ok {
		return nil, summary, fmt.Errorf("manager name column not found in header %v", rows[0])
	}

	cell := func(row []string, key string) string {
		idx, ok := columns[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	optional := func(row []string, key string) *string {
		if v := cell(row, key); v != "" {
			return &v
		}
		return nil
	}

	var inputs []service.SubmitRequestInput
	seen := make(map[string]bool)
	for _, row := range rows[1:] {
		summary.Total++

		shop := cell(row, "shop")
		manager := cell(row, "manager")
		if shop == "" || manager == "" {
			summary.Skipped++
			continue
		}

		// 중복 제거 (매장명+담당자 기준)
		key := shop + "|" + manager
		if seen[key] {
			summary.Skipped++
			continue
		}
		seen[key] = true

		inputs = append(inputs, service.SubmitRequestInput{
			ShopName:    shop,
			ManagerName: manager,
			Phone:       optional(row, "phone"),
			KakaoURL:    optional(row, "kakao"),
			Notes:       optional(row, "notes"),
		})
	}

	return inputs, summary, nil
}

func mapHeader(header []string) map[string]int {
	columns := make(map[string]int)
	for i, caption := range header {
		normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(caption), " ", ""))
		if key, ok := headerAliases[normalized]; ok {
			if _, dup := columns[key]; !dup {
				columns[key] = i
			}
		}
	}
	return columns
}
