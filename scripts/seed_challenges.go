// 导入题库与项目种子数据
//
// 已存在的项目（按名称）和题目（按标题+语言）会跳过，可重复执行。
//
// 用法: go run scripts/seed_challenges.go -file configs/challenges.yaml

package main

import (
	"devcollab_backend/internal/config"
	"devcollab_backend/internal/model"
	"devcollab_backend/pkg/database"
	"devcollab_backend/pkg/logger"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type seedCase struct {
	Stdin    string `yaml:"stdin" json:"stdin"`
	Expected string `yaml:"expected" json:"expected"`
}

type seedChallenge struct {
	Title      string     `yaml:"title"`
	Language   string     `yaml:"language"`
	Difficulty string     `yaml:"difficulty"`
	Cases      []seedCase `yaml:"cases"`
}

type seedProject struct {
	Name       string          `yaml:"name"`
	Language   string          `yaml:"language"`
	OwnerID    uint            `yaml:"owner_id"`
	Recruiting *bool           `yaml:"recruiting"`
	Challenges []seedChallenge `yaml:"challenges"`
}

type seedFile struct {
	Generic  []seedChallenge `yaml:"generic"`
	Projects []seedProject   `yaml:"projects"`
}

func main() {
	file := flag.String("file", "configs/challenges.yaml", "种子数据文件")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取种子文件: %v", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("解析种子文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	created := 0
	for _, c := range seed.Generic {
		ok, err := upsertChallenge(db, c, nil)
		if err != nil {
			log.Fatalf("导入题目 %q 失败: %v", c.Title, err)
		}
		if ok {
			created++
		}
	}

	for _, p := range seed.Projects {
		project, err := findOrCreateProject(db, p)
		if err != nil {
			log.Fatalf("导入项目 %q 失败: %v", p.Name, err)
		}
		for _, c := range p.Challenges {
			if c.Language == "" {
				c.Language = p.Language
			}
			ok, err := upsertChallenge(db, c, &project.ID)
			if err != nil {
				log.Fatalf("导入题目 %q 失败: %v", c.Title, err)
			}
			if ok {
				created++
			}
		}
	}

	log.Printf("完成！新增题目 %d 道", created)
}

func findOrCreateProject(db *gorm.DB, p seedProject) (*model.Project, error) {
	var project model.Project
	err := db.Where("name = ?", p.Name).First(&project).Error
	if err == nil {
		return &project, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	recruiting := true
	if p.Recruiting != nil {
		recruiting = *p.Recruiting
	}
	project = model.Project{
		Name:       p.Name,
		OwnerID:    p.OwnerID,
		Language:   p.Language,
		Recruiting: recruiting,
		Status:     model.ProjectOpen,
	}
	if err := db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func upsertChallenge(db *gorm.DB, c seedChallenge, projectID *uint) (bool, error) {
	var count int64
	if err := db.Model(&model.Challenge{}).Where("title = ? AND language = ?", c.Title, model.NormalizeLanguage(c.Language)).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	challenge := model.Challenge{
		Title:      c.Title,
		Language:   c.Language,
		Difficulty: model.ParseDifficulty(c.Difficulty),
		ProjectID:  projectID,
		Active:     true,
	}
	if len(c.Cases) > 0 {
		spec, err := json.Marshal(map[string]interface{}{"cases": c.Cases})
		if err != nil {
			return false, err
		}
		challenge.TestSpec = datatypes.JSON(spec)
	}
	return true, db.Create(&challenge).Error
}
