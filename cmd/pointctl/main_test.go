package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/danmuck/pointcode/internal/convert"
	"github.com/danmuck/pointcode/internal/pointcode"
	"github.com/danmuck/pointcode/internal/testutil/testlog"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestEncodeJSON(t *testing.T) {
	testlog.Start(t)
	code, out, errOut := runCLI("encode", "-o", "json", "1234")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var v pointcode.Value
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Formatted != "9-82" || v.Binary != "00010011010010" {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestEncodeHexUnderANSI(t *testing.T) {
	testlog.Start(t)
	code, out, errOut := runCLI("encode", "--hex", "-s", "8-8-8", "-o", "json", "12d687")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, `"formatted": "18-214-135"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestDecodeAndConvert(t *testing.T) {
	testlog.Start(t)
	code, out, _ := runCLI("decode", "-o", "json", "62-74")
	if code != exitOK || !strings.Contains(out, `"decimal": 8010`) {
		t.Fatalf("decode: %d %s", code, out)
	}
	code, out, _ = runCLI("convert", "--from", "ANSI 8-8-8", "--to", "5-8-11", "-o", "json", "75-37-103")
	if code != exitOK || !strings.Contains(out, `"formatted": "9-100-1383"`) {
		t.Fatalf("convert: %d %s", code, out)
	}
}

func TestConversionErrorsExitOne(t *testing.T) {
	testlog.Start(t)
	code, _, errOut := runCLI("encode", "16384")
	if code != exitConvert || !strings.Contains(errOut, "Invalid (Range: 0-16383)") {
		t.Fatalf("range: %d %q", code, errOut)
	}
	code, _, errOut = runCLI("decode", "128-0")
	if code != exitConvert || !strings.Contains(errOut, "Part 1 exceeds range (0-127)") {
		t.Fatalf("overflow: %d %q", code, errOut)
	}
	code, _, errOut = runCLI("convert", "--from", "8-8-8", "--to", "7-4-5", "1-2-3")
	if code != exitConvert || !strings.Contains(errOut, "Invalid (Range: 0-65535)") {
		t.Fatalf("width mismatch: %d %q", code, errOut)
	}
}

func TestUsageErrorsExitTwo(t *testing.T) {
	testlog.Start(t)
	cases := [][]string{
		{},
		{"frobnicate"},
		{"encode"},
		{"encode", "1", "2"},
		{"encode", "--nope", "1"},
		{"convert", "1-2"},
		{"table", "-b", "20", "1"},
		{"radix", "--from", "99", "1"},
		{"encode", "-o", "xml", "1"},
	}
	for _, args := range cases {
		if code, _, _ := runCLI(args...); code != exitUsage {
			t.Fatalf("%v: expected exit %d, got %d", args, exitUsage, code)
		}
	}
}

func TestTableAndRadix(t *testing.T) {
	testlog.Start(t)
	code, out, _ := runCLI("table", "-o", "json", "-b", "16", "65535")
	if code != exitOK {
		t.Fatalf("table exit %d", code)
	}
	var rows []convert.Representation
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0].Formatted != "127-15-31" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	code, out, _ = runCLI("radix", "--from", "hex", "--to", "dec", "ff")
	if code != exitOK || !strings.Contains(out, "255") || !strings.Contains(out, "11111111") {
		t.Fatalf("radix: %d %s", code, out)
	}
	code, out, _ = runCLI("schemas", "-b", "24")
	if code != exitOK || !strings.Contains(out, "Russian 5-8-11") {
		t.Fatalf("schemas: %d %s", code, out)
	}
}
