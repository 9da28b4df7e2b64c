// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

type errorType int

const (
	freezeError   errorType = 2
	internalError errorType = 1
	parseError    errorType = 1
	noError       errorType = 0
)

type fError struct {
	typ errorType
	err error
}

func (e *fError) Error() string {
	return e.err.Error()
}

func (e *fError) Code() int {
	return int(e.typ)
}

func ferror(typ errorType, err error) *fError {
	return &fError{
		typ: typ,
		err: err,
	}
}

func getErrorCode(err error) int {
	if err == nil {
		return 0
	}
	switch e := err.(type) {
	case *fError:
		return e.Code()
	default:
		return -1
	}
}

func getErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
