package shell

import (
	"github.com/abiosoft/ishell"
)

func RunShell() {
	shell := ishell.New()
	shell.Println("Artworked Interactive Shell 0.1")

	shell.AddCmd(&ishell.Cmd{
		Name: "recount",
		Help: "Repair likes and comments counters of every post.",
		Func: RecountPosts,
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "find-user",
		Help: "Find users by username prefix.",
		Func: FindUsers,
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "route",
		Help: "Print the profile path of a user id.",
		Func: EncryptRoute,
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "unroute",
		Help: "Print the user id behind an encrypted profile id.",
		Func: DecryptRoute,
	})

	// start shell
	shell.Start()
}
