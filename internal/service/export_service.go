package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 项目文档导出接口
//
// 设计说明：
//   - 导出以内存缓冲返回，由 Handler 层设置下载响应头
//   - Excel：Sheet "Ringkasan" 为项目概要与阶段进度，Sheet "Log Prototipe" 为原型日志
//   - 日历：项目开始日期 + 每条原型日志各一个全天事件
type ExportService interface {
	ExportProject(ctx context.Context, projectID string) (*bytes.Buffer, string, error)
	ProjectCalendar(ctx context.Context, projectID string) ([]byte, string, error)
}

type exportService struct {
	projects ProjectService
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(projects ProjectService, logger *zap.Logger) ExportService {
	return &exportService{projects: projects, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportProject 导出项目文档为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportProject(ctx context.Context, projectID string) (*bytes.Buffer, string, error) {
	detail, err := s.projects.Detail(ctx, projectID, TabLogs)
	if err != nil {
		return nil, "", err
	}
	p := detail.Project

	f := excelize.NewFile()
	defer f.Close()

	summary := "Ringkasan"
	idx, _ := f.NewSheet(summary)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1C1917"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 项目概要
	f.SetColWidth(summary, "A", "A", 18)
	f.SetColWidth(summary, "B", "B", 60)
	f.SetCellValue(summary, "A1", p.Title)
	f.MergeCell(summary, "A1", "B1")
	f.SetCellStyle(summary, "A1", "B1", headerStyle)

	fields := [][2]string{
		{"ID", p.ID},
		{"Status", string(p.Status)},
		{"Kategori", p.Category},
		{"Desainer", p.Designer},
		{"Tanggal Mulai", p.StartDate},
		{"Terakhir Diperbarui", p.UpdatedAt},
		{"Deskripsi", p.Description},
		{"Progres", fmt.Sprintf("%.0f%%", p.Progress*100)},
	}
	row := 2
	for _, kv := range fields {
		f.SetCellValue(summary, cell("A", row), kv[0])
		f.SetCellValue(summary, cell("B", row), kv[1])
		row++
	}

	// 阶段进度
	row++
	f.SetCellValue(summary, cell("A", row), "Tahap")
	f.SetCellValue(summary, cell("B", row), "Status")
	f.SetCellStyle(summary, cell("A", row), cell("B", row), headerStyle)
	row++
	for _, st := range detail.Stages {
		state := "Belum"
		switch {
		case st.Completed:
			state = "Selesai"
		case st.Reached:
			state = "Berjalan"
		}
		f.SetCellValue(summary, cell("A", row), st.Name)
		f.SetCellValue(summary, cell("B", row), state)
		row++
	}

	// 原型日志
	logSheet := "Log Prototipe"
	f.NewSheet(logSheet)
	f.SetColWidth(logSheet, "A", "A", 14)
	f.SetColWidth(logSheet, "B", "B", 12)
	f.SetColWidth(logSheet, "C", "C", 60)
	f.SetColWidth(logSheet, "D", "D", 40)
	for i, h := range []string{"Tanggal", "Versi", "Catatan", "Gambar"} {
		f.SetCellValue(logSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(logSheet, "A1", "D1", headerStyle)
	for i, l := range detail.Logs {
		r := i + 2
		f.SetCellValue(logSheet, cell("A", r), l.Date.String())
		f.SetCellValue(logSheet, cell("B", r), l.Version)
		f.SetCellValue(logSheet, cell("C", r), l.Notes)
		f.SetCellValue(logSheet, cell("D", r), l.ImageURL)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.String("project_id", projectID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("Dokumentasi_%s.xlsx", fileSafe(p.Title)), nil
}

// ═══════════════════════════════════════════════════════════
// ProjectCalendar 导出原型日志日历（iCalendar）
// ═══════════════════════════════════════════════════════════

func (s *exportService) ProjectCalendar(ctx context.Context, projectID string) ([]byte, string, error) {
	detail, err := s.projects.Detail(ctx, projectID, TabLogs)
	if err != nil {
		return nil, "", err
	}
	p := detail.Project
	stamp := s.now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Kriya Nusantara//R&D Dashboard//ID")
	cal.SetXWRCalName(p.Title)

	if start, err := time.Parse(time.DateOnly, p.StartDate); err == nil {
		evt := cal.AddEvent(fmt.Sprintf("project-%s-start@kriya-nusantara", p.ID))
		evt.SetDtStampTime(stamp)
		evt.SetAllDayStartAt(start)
		evt.SetAllDayEndAt(start.AddDate(0, 0, 1))
		evt.SetSummary(fmt.Sprintf("Mulai proyek: %s", p.Title))
		evt.SetDescription(p.Description)
	}

	for _, l := range detail.Logs {
		if l.Date.IsZero() {
			continue
		}
		evt := cal.AddEvent(fmt.Sprintf("log-%s@kriya-nusantara", l.ID))
		evt.SetDtStampTime(stamp)
		evt.SetAllDayStartAt(l.Date.Time)
		evt.SetAllDayEndAt(l.Date.AddDate(0, 0, 1))
		evt.SetSummary(fmt.Sprintf("%s %s", p.Title, l.Version))
		evt.SetDescription(l.Notes)
		if l.ImageURL != "" {
			evt.SetURL(l.ImageURL)
		}
	}

	return []byte(cal.Serialize()), fmt.Sprintf("Log_%s.ics", fileSafe(p.Title)), nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// fileSafe 去掉文件名中不安全的字符
func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		case ' ':
			return '_'
		}
		return r
	}, s)
}

