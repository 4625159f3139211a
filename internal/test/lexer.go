package test

import (
	"math/rand"
	"strings"
)

const validTokens = "var;if;else;while;function;return;print;x;counter;_tmp;(;);{;};[;];\"this is a string\";\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\"\";'c';true;false;+;-;*;/;==;!=;>=;<=;<;>;&&;||;=;,;123;321;3.14;//comment\n;/* block */"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")
	valid = append(valid, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
