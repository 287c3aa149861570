package diag

type Note struct {
	Site Site
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Site
	Notes    []Note
}

func New(sev Severity, code Code, primary Site, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary Site, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(site Site, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Site: site, Msg: msg})
	return d
}
