package main

import (
	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands"
	_ "github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands/admin"
	_ "github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands/dump"
	_ "github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands/lost112import"
	_ "github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands/migrate"
	_ "github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands/seed"
)

func main() {
	commands.Execute()
}
