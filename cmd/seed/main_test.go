package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/internal/app/service"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeSheet(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "requests.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadRequestsFromXLSX(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"매장명", "담당자", "연락처", "오픈채팅", "비고"},
		{"롯데백화점 본점", "김민수", "010-1234-5678", "https://open.kakao.com/o/sample1", "2층"},
		{"신세계 강남점", "이지은"},
		{"", "빈 매장명"},
		{"롯데백화점 본점", "김민수", "010-0000-0000"},
	})

	inputs, summary, err := readRequestsFromXLSX(path)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Skipped)
	require.Len(t, inputs, 2)

	assert.Equal(t, "롯데백화점 본점", inputs[0].ShopName)
	require.NotNil(t, inputs[0].KakaoURL)
	assert.Equal(t, "https://open.kakao.com/o/sample1", *inputs[0].KakaoURL)
	require.NotNil(t, inputs[0].Notes)
	assert.Equal(t, "2층", *inputs[0].Notes)

	assert.Equal(t, "이지은", inputs[1].ManagerName)
	assert.Nil(t, inputs[1].Phone)
}

func TestReadRequestsFromXLSX_EnglishHeader(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"Notes", "Shop Name", "Manager Name"},
		{"memo", "MyShop", "Kim"},
	})

	inputs, _, err := readRequestsFromXLSX(path)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "MyShop", inputs[0].ShopName)
	assert.Equal(t, "Kim", inputs[0].ManagerName)
	require.NotNil(t, inputs[0].Notes)
	assert.Equal(t, "memo", *inputs[0].Notes)
}

func TestReadRequestsFromXLSX_MissingColumns(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"연락처", "비고"},
		{"010-1111-2222", "x"},
	})

	_, _, err := readRequestsFromXLSX(path)
	assert.Error(t, err)
}

func TestImportRequests(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(store.NewLocalBackend(store.NewMemoryKV()))
	svc := service.NewRequestService(repos)

	inputs := append(demoRequests(), service.SubmitRequestInput{ShopName: "  ", ManagerName: "누군가"})
	imported, failed := importRequests(ctx, svc, inputs)
	assert.Equal(t, 3, imported)
	assert.Equal(t, 1, failed)

	pending := model.RequestStatusPending
	list, err := svc.List(ctx, &pending)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
