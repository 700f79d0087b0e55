package shell

import (
	"context"
	"strings"

	"github.com/abiosoft/ishell"
	post "github.com/artworked/core/board/posts"
	"github.com/artworked/core/core/user"
	"github.com/artworked/core/deps"
)

func RecountPosts(c *ishell.Context) {
	c.ShowPrompt(false)
	defer c.ShowPrompt(true)

	c.ProgressBar().Indeterminate(true)
	c.ProgressBar().Start()
	fixed, err := post.RecountAll(context.Background(), deps.Container)
	c.ProgressBar().Stop()
	if err != nil {
		c.Println("Could not recount posts:", err)
	}
	c.Printf("Fixed %d posts\n", fixed)
}

func FindUsers(c *ishell.Context) {
	term := strings.Join(c.Args, " ")
	if term == "" {
		c.Print("Username starts with: ")
		term = c.ReadLine()
	}

	list, err := user.Search(context.Background(), deps.Container, term)
	if err != nil {
		c.Println("Could not search users:", err)
		return
	}
	for _, usr := range list {
		c.Printf("%s::%s <%s>\n", usr.ID, usr.Username, usr.Email)
	}
	if len(list) == 0 {
		c.Println("No users found")
	}
}

func EncryptRoute(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("Usage: route $userId")
		return
	}
	encrypted, err := deps.Container.Cipher().Encrypt(c.Args[0])
	if err != nil {
		c.Println("Could not encrypt:", err)
		return
	}
	c.Println("/userprofile/" + encrypted)
}

func DecryptRoute(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("Usage: unroute $encryptedId")
		return
	}
	id, err := deps.Container.Cipher().Decrypt(strings.TrimPrefix(c.Args[0], "/userprofile/"))
	if err != nil {
		c.Println("Could not decrypt:", err)
		return
	}
	c.Println(id)
}
