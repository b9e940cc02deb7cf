// tokenctlは運用者向けのトークン操作CLI。
// JWT_SECRETと同じシークレットでトークンを発行・検査する。
package main

import "github.com/nao1215/medilabo/cmd/tokenctl/cmd"

func main() {
	cmd.Execute()
}
