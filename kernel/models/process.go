package models

import "github.com/sisoputnfrba/simulador-paginacion/utils/list"

// RecentPagesSize es la cantidad de páginas recientes que sesgan el próximo acceso.
const RecentPagesSize = 5

type Process struct {
	Pid         uint
	NumPages    int
	RecentPages *list.Window[int]
}

func NewProcess(pid uint, numPages int) *Process {
	return &Process{
		Pid:         pid,
		NumPages:    numPages,
		RecentPages: list.NewWindow[int](RecentPagesSize),
	}
}
