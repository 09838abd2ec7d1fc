package utils

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	csvData := `firstName,surname,pin,weekdayRate,saturdayRate,sundayRate
Grace,Tran,1111,25,30,35
Marcus,Webb,2222,27.5,32,37.5`

	reader := strings.NewReader(csvData)

	got, err := ParseCSV(reader)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}

	want := [][]string{
		{"firstName", "surname", "pin", "weekdayRate", "saturdayRate", "sundayRate"},
		{"Grace", "Tran", "1111", "25", "30", "35"},
		{"Marcus", "Webb", "2222", "27.5", "32", "37.5"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCSV returned %+v, want %+v", got, want)
	}
}

func TestParseCSVRaggedRows(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("a,b,c\n1,2"))
	if err == nil {
		t.Error("expected error for ragged rows")
	}
}
