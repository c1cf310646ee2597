package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ikkim/flyer-backend/config"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/internal/app/service"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/logger"
)

func main() {
	filePath := flag.String("file", "", "XLSX file with registration requests")
	demo := flag.Bool("demo", false, "insert demo registration requests")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	if *filePath == "" && !*demo {
		log.Fatal("Usage: go run ./cmd/seed -file <xlsx_file_path> | -demo")
	}

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{Level: "warn", Format: "console"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open storage backend:", err)
	}
	repos := repository.New(backend)
	defer repos.Close()

	requestService := service.NewRequestService(repos)

	var inputs []service.SubmitRequestInput
	if *demo {
		inputs = append(inputs, demoRequests()...)
	}
	if *filePath != "" {
		fmt.Printf("Reading XLSX file: %s\n", *filePath)
		rows, summary, err := readRequestsFromXLSX(*filePath)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
		fmt.Printf("\nSummary:\n")
		fmt.Printf("  Total rows: %d\n", summary.Total)
		fmt.Printf("  Valid requests: %d\n", len(rows))
		fmt.Printf("  Skipped rows: %d\n", summary.Skipped)
		inputs = append(inputs, rows...)
	}

	fmt.Printf("Total requests to import: %d (backend: %s)\n", len(inputs), repos.BackendName())
	if len(inputs) == 0 {
		return
	}

	// 사용자 확인
	if !*yes && !confirm() {
		fmt.Println("Import cancelled.")
		return
	}

	imported, failed := importRequests(ctx, requestService, inputs)
	fmt.Println("Import completed!")
	fmt.Printf("  Imported: %d\n", imported)
	fmt.Printf("  Failed: %d\n", failed)
}

func confirm() bool {
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

// importRequests submits each row through the request service so that
// validation and admin notifications match the public intake form.
func importRequests(ctx context.Context, svc service.RequestService, inputs []service.SubmitRequestInput) (imported, failed int) {
	for i, in := range inputs {
		if _, err := svc.Submit(ctx, in); err != nil {
			failed++
			fmt.Printf("  row %d (%s): %v\n", i+1, in.ShopName, err)
			continue
		}
		imported++
	}
	return imported, failed
}

func demoRequests() []service.SubmitRequestInput {
	return []service.SubmitRequestInput{
		{
			ShopName:    "롯데백화점 본점",
			ManagerName: "김민수",
			Phone:       strPtr("010-1234-5678"),
			KakaoURL:    strPtr("https://open.kakao.com/o/sample1"),
			Notes:       strPtr("2층 여성복 매장입니다."),
		},
		{
			ShopName:    "신세계 강남점",
			ManagerName: "이지은",
			Phone:       strPtr("010-9876-5432"),
			KakaoURL:    strPtr("https://open.kakao.com/o/sample2"),
		},
		{
			ShopName:    "현대백화점 판교점",
			ManagerName: "박서준",
			Phone:       strPtr("010-5555-6666"),
			KakaoURL:    strPtr("https://open.kakao.com/o/sample3"),
			Notes:       strPtr("잡화 코너 매장"),
		},
	}
}

func strPtr(s string) *string { return &s }
