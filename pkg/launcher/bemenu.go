package launcher

type Bemenu struct {
	plainMenu
}

func NewBemenu(args []string) *Bemenu {
	return &Bemenu{plainMenu{program: "bemenu", args: args}}
}
