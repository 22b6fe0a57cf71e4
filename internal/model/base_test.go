package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	var c Crew
	if err := json.Unmarshal([]byte(`{"name":"Budi","join_date":"2018-03-10","birth_date":""}`), &c); err != nil {
		t.Fatalf("Unmarshal 应成功: %v", err)
	}
	if c.JoinDate.String() != "2018-03-10" {
		t.Errorf("期望 join_date=2018-03-10，实际=%s", c.JoinDate)
	}
	if !c.BirthDate.IsZero() {
		t.Error("空字符串应解析为零值日期")
	}

	b, _ := json.Marshal(c)
	var m map[string]interface{}
	_ = json.Unmarshal(b, &m)
	if m["join_date"] != "2018-03-10" {
		t.Errorf("期望输出 2018-03-10，实际=%v", m["join_date"])
	}
	if m["birth_date"] != "" {
		t.Errorf("零值日期应输出空字符串，实际=%v", m["birth_date"])
	}
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"10/03/2018"`), &d); err == nil {
		t.Error("非 YYYY-MM-DD 格式应报错")
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, 2, 20, 13, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) 应成功: %v", err)
	}
	if d.String() != "2024-02-20" {
		t.Errorf("期望 2024-02-20，实际=%s", d)
	}
	if err := d.Scan("2024-01-15T00:00:00Z"); err != nil || d.String() != "2024-01-15" {
		t.Errorf("Scan(string) 期望 2024-01-15，实际=%s err=%v", d, err)
	}
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Error("Scan(nil) 应得到零值")
	}
	if err := d.Scan(42); err == nil {
		t.Error("不支持的类型应报错")
	}
}

func TestDate_Value(t *testing.T) {
	v, _ := MustDate("2022-06-01").Value()
	if v != "2022-06-01" {
		t.Errorf("期望 2022-06-01，实际=%v", v)
	}
	v, _ = Date{}.Value()
	if v != nil {
		t.Errorf("零值应写入 NULL，实际=%v", v)
	}
}

func TestStringArray_ScanValue(t *testing.T) {
	in := StringArray{"Hardwood", "Fine Grain", `Say "hi"`}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value 应成功: %v", err)
	}

	var out StringArray
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if len(out) != 3 || out[0] != "Hardwood" || out[1] != "Fine Grain" || out[2] != `Say "hi"` {
		t.Errorf("往返结果不一致: %#v", out)
	}
}

func TestStringArray_ScanPostgresLiteral(t *testing.T) {
	var out StringArray
	if err := out.Scan([]byte(`{Flexible,"High Tensile",Sustainable}`)); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if len(out) != 3 || out[1] != "High Tensile" {
		t.Errorf("解析结果错误: %#v", out)
	}

	if err := out.Scan("{}"); err != nil || len(out) != 0 {
		t.Errorf("空数组应解析为空切片: %#v err=%v", out, err)
	}
	if err := out.Scan("Flexible"); err == nil {
		t.Error("非数组字面量应报错")
	}
}

func TestEnums_Valid(t *testing.T) {
	if !StatusArchived.Valid() || ProjectStatus("Design").Valid() {
		t.Error("ProjectStatus.Valid 判断错误")
	}
	if !StockOutOfStock.Valid() || StockStatus("Unknown").Valid() {
		t.Error("StockStatus.Valid 判断错误")
	}
	if !PositionDrafter.Valid() || Position("Manager").Valid() {
		t.Error("Position.Valid 判断错误")
	}
}
