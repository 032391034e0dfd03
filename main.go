/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "presale-relay/cmd"

func main() {
	cmd.Execute()
}
