package model

import (
	"reflect"
	"testing"
)

func TestParameterSetCodes(t *testing.T) {
	params := ParameterSet{"S10": "50", "S2": "64", "S3": "25", "S1": "57"}
	want := []string{"S1", "S2", "S3", "S10"}
	if got := params.Codes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Codes() = %v, want %v", got, want)
	}
}

func TestParameterSetScan(t *testing.T) {
	var params ParameterSet
	if err := params.Scan([]byte(`{"S3":"25","S4":"20"}`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if params["S3"] != "25" || params["S4"] != "20" {
		t.Errorf("unexpected parameters %v", params)
	}

	if err := params.Scan(nil); err != nil || params != nil {
		t.Errorf("expected nil set after scanning NULL, got %v, %v", params, err)
	}
	if err := params.Scan(42); err == nil {
		t.Error("expected an error for an unsupported type")
	}

	value, err := ParameterSet(nil).Value()
	if err != nil || string(value.([]byte)) != "{}" {
		t.Errorf("expected empty object for nil set, got %v, %v", value, err)
	}
}

func TestProfileClone(t *testing.T) {
	original := &Profile{Name: "Field", Parameters: ParameterSet{"S3": "25"}}
	clone := original.Clone()
	clone.Parameters["S3"] = "99"
	if original.Parameters["S3"] != "25" {
		t.Error("clone must not share parameters")
	}
}
