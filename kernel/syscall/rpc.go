package syscall

import (
	"rvcore/kernel/ipc"
	"rvcore/kernel/mem/vmm"
	"rvcore/kernel/proc"
)

func sysRecv(ptr, lenWords uint64) uint64 {
	data := ipc.Recv()
	deliver(data, lenWords, ptr)
	return 0
}

func sysSendRecv(sendPtr, sendLenWords, recvPtr, recvLenWords uint64) uint64 {
	satp := proc.CurrentUserSATP()
	send := bytesToWords(vmm.CopyBytesFromUser(satp, sendPtr, sendLenWords*8))
	reply := ipc.SendRecv(send)
	deliver(reply, recvLenWords, recvPtr)
	return 0
}

// deliver copies min(len(data), lenWords) words of data into user memory
// at ptr, word for word, matching RECV/SENDRECV's "receive at most
// len_words, short reads if fewer arrived" contract.
func deliver(data []uint64, lenWords, ptr uint64) {
	n := uint64(len(data))
	if n > lenWords {
		n = lenWords
	}
	vmm.CopyBytesToUser(proc.CurrentUserSATP(), wordsToBytes(data[:n]), ptr)
}
