package main

import (
    "log"
)

func recovery_function () {
    if r := recover(); r != nil {
        log.Println (r)
        return
    }
}

func reverse (s []string) {
    for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
        s[i], s[j] = s[j], s[i]
    }
}
