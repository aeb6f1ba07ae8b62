package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/MidhunThomas45/LMSv2024Project/config"
	"github.com/MidhunThomas45/LMSv2024Project/internal/database"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
)

var dryRun = flag.Bool("dry-run", true, "Dry run mode, don't actually update records")

func main() {
	flag.Parse()

	log.Println("Starting membership expiry sweep...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 连接数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	now := time.Now()

	// 统计到期但仍标记 active 的记录
	var candidates int64
	err = db.Model(&model.UserMembership{}).
		Where("status = ? AND end_date <= ?", model.UserMembershipActive, now).
		Count(&candidates).Error
	if err != nil {
		log.Fatalf("Failed to count lapsed memberships: %v", err)
	}
	log.Printf("Found %d lapsed memberships", candidates)

	if *dryRun {
		log.Println("DRY RUN MODE - No records were updated")
		log.Println("Run with -dry-run=false to mark them expired")
		return
	}

	membershipRepo := repository.NewMembershipRepository(db)
	expired, err := membershipRepo.MarkExpired(now)
	if err != nil {
		log.Fatalf("Failed to expire memberships: %v", err)
	}
	log.Printf("Marked %d memberships expired", expired)
}
