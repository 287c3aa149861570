package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Таблицы
	TblShiftReduce    Code = 4001
	TblReduceReduce   Code = 4002
	TblNeverReduced   Code = 4003
	TblInternalAction Code = 4100

	// Модель
	MdlInvalid Code = 5001
	MdlIO      Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	TblShiftReduce:    "Shift/reduce conflict",
	TblReduceReduce:   "Reduce/reduce conflict",
	TblNeverReduced:   "Rule never reduced",
	TblInternalAction: "Internal consistency failure",
	MdlInvalid:        "Invalid grammar model",
	MdlIO:             "Cannot read grammar model",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("TBL%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("MDL%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
