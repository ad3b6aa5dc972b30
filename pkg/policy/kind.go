package policy

//go:generate go run github.com/dmarkham/enumer -type Kind -trimprefix Kind -transform lower -yaml -output kind.gen.go

type Kind int

const (
	KindVault Kind = iota
	KindGrant
	KindBind
	KindUnbind
)

func (t Kind) Tag() string {
	return "!" + t.String()
}
