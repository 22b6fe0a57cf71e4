package sample

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kng194/kng-rnd/internal/model"
)

//go:embed data.yaml
var rawData []byte

// SpecField 概览标签中的规格项
type SpecField struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// TeamMember 概览标签中的团队成员（静态名单）
type TeamMember struct {
	Name string `yaml:"name" json:"name"`
	Role string `yaml:"role" json:"role"`
}

// Overview 概览标签静态内容
type Overview struct {
	Specs []SpecField  `yaml:"specs" json:"specs"`
	Team  []TeamMember `yaml:"team"  json:"team"`
}

// DiscussionMessage 讨论标签中的静态对话
type DiscussionMessage struct {
	Author   string `yaml:"author"    json:"author"`
	PostedAt string `yaml:"posted_at" json:"posted_at"`
	Message  string `yaml:"message"   json:"message"`
}

// Dataset 内置样例数据集
type Dataset struct {
	Projects      []model.Project      `yaml:"projects"`
	Materials     []model.Material     `yaml:"materials"`
	Crews         []model.Crew         `yaml:"crews"`
	PrototypeLogs []model.PrototypeLog `yaml:"prototype_logs"`
	Overview      Overview             `yaml:"overview"`
	Discussion    []DiscussionMessage  `yaml:"discussion"`
}

var (
	loadOnce sync.Once
	loaded   *Dataset
	loadErr  error
)

// Parse 解析 YAML 样例数据
func Parse(b []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(b, &ds); err != nil {
		return nil, fmt.Errorf("解析样例数据失败: %w", err)
	}
	return &ds, nil
}

// Load 返回内置样例数据集（仅解析一次）。
// 调用方拿到的是深拷贝，可自由修改。
func Load() (*Dataset, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(rawData)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return loaded.Clone(), nil
}

// MustLoad 内置数据在编译期嵌入，解析失败属于程序错误
func MustLoad() *Dataset {
	ds, err := Load()
	if err != nil {
		panic(err)
	}
	return ds
}

// Clone 深拷贝数据集
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Projects:      append([]model.Project(nil), d.Projects...),
		Crews:         append([]model.Crew(nil), d.Crews...),
		PrototypeLogs: append([]model.PrototypeLog(nil), d.PrototypeLogs...),
		Overview: Overview{
			Specs: append([]SpecField(nil), d.Overview.Specs...),
			Team:  append([]TeamMember(nil), d.Overview.Team...),
		},
		Discussion: append([]DiscussionMessage(nil), d.Discussion...),
	}
	out.Materials = make([]model.Material, len(d.Materials))
	for i, m := range d.Materials {
		m.Properties = append(model.StringArray(nil), m.Properties...)
		out.Materials[i] = m
	}
	return out
}

// LogsFor 返回某项目的样例日志
func (d *Dataset) LogsFor(projectID string) []model.PrototypeLog {
	var out []model.PrototypeLog
	for _, l := range d.PrototypeLogs {
		if l.ProjectID == projectID {
			out = append(out, l)
		}
	}
	return out
}
